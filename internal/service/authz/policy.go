package authz

import "fmt"

// Action is the verb part of an operation.
type Action string

const (
	ActionFindAll              Action = "findAll"
	ActionFindByID             Action = "findById"
	ActionCreate               Action = "create"
	ActionUpdate               Action = "update"
	ActionDelete               Action = "delete"
	ActionFindAllContent       Action = "findAllContent"
	ActionFindContent          Action = "findContent"
	ActionFindPreferredContent Action = "findPreferredContent"
	ActionCreateContent        Action = "createContent"
	ActionUpdateContent        Action = "updateContent"
	ActionDeleteContent        Action = "deleteContent"
	ActionUpdatePublished      Action = "updatePublished"
)

// Access is the permission level an action needs.
type Access string

const (
	AccessRead    Access = "read"
	AccessWrite   Access = "write"
	AccessPublish Access = "publish"
)

// Resources guarded by the gate.
const (
	ResourcePost     = "post"
	ResourcePage     = "page"
	ResourceHomepage = "homepage"
	ResourceUserBio  = "userbio"
	ResourceLanguage = "language"
	ResourceLink     = "link"
)

// Operation identifies one service operation.
type Operation struct {
	Resource string
	Action   Action
}

func (o Operation) String() string {
	return o.Resource + "." + string(o.Action)
}

// Permission is a "<resource>:<access>" token.
type Permission string

// PermissionFor builds the permission token for a resource and access level.
func PermissionFor(resource string, access Access) Permission {
	return Permission(fmt.Sprintf("%s:%s", resource, access))
}

// Policy maps operations to the permission they require.
// Operations missing from the table are denied.
type Policy map[Operation]Permission

// Required returns the permission for op.
func (p Policy) Required(op Operation) (Permission, bool) {
	perm, ok := p[op]
	return perm, ok
}

// actionAccess is the audited action table. Changing an entry changes who may call it.
var actionAccess = map[Action]Access{
	ActionFindAll:              AccessRead,
	ActionFindByID:             AccessRead,
	ActionFindAllContent:       AccessRead,
	ActionFindContent:          AccessRead,
	ActionFindPreferredContent: AccessRead,
	ActionCreate:               AccessWrite,
	ActionUpdate:               AccessWrite,
	ActionDelete:               AccessWrite,
	ActionCreateContent:        AccessWrite,
	ActionUpdateContent:        AccessWrite,
	ActionDeleteContent:        AccessWrite,
	ActionUpdatePublished:      AccessPublish,
}

// actionsByResource lists the operations each resource exposes.
var actionsByResource = map[string][]Action{
	ResourcePost:     localizedActions(ActionUpdatePublished),
	ResourcePage:     localizedActions(ActionUpdatePublished),
	ResourceHomepage: localizedActions(),
	ResourceUserBio:  localizedActions(),
	ResourceLanguage: {ActionFindAll, ActionFindByID, ActionCreate, ActionDelete},
	ResourceLink:     {ActionFindAll, ActionFindByID, ActionCreate, ActionDelete},
}

func localizedActions(extra ...Action) []Action {
	actions := []Action{
		ActionFindAll, ActionFindByID, ActionCreate, ActionUpdate, ActionDelete,
		ActionFindAllContent, ActionFindContent, ActionFindPreferredContent,
		ActionCreateContent, ActionUpdateContent, ActionDeleteContent,
	}
	return append(actions, extra...)
}

// DefaultPolicy returns the full operation table.
func DefaultPolicy() Policy {
	p := make(Policy)
	for resource, actions := range actionsByResource {
		for _, a := range actions {
			p[Operation{Resource: resource, Action: a}] = PermissionFor(resource, actionAccess[a])
		}
	}
	return p
}
