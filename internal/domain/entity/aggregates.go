package entity

// Kind names an aggregate type.
// Name is used in operator messages, Resource in permission tokens, metrics and table names.
type Kind struct {
	Name     string
	Resource string
}

var (
	KindPost     = Kind{Name: "Post", Resource: "post"}
	KindPage     = Kind{Name: "Page", Resource: "page"}
	KindHomepage = Kind{Name: "Homepage", Resource: "homepage"}
	KindUserBio  = Kind{Name: "UserBio", Resource: "userbio"}
)

// Post is a blog post.
type Post struct {
	Localized
	LinkRef
	Thumbnail       *string
	CommentsEnabled bool
	Published       bool
}

// NewPost returns a transient post with comments enabled and unpublished.
func NewPost() *Post {
	return &Post{CommentsEnabled: true}
}

// Equal compares identity only.
func (p *Post) Equal(o *Post) bool {
	if p == nil || o == nil {
		return p == o
	}
	return sameIdentity(&p.Localized, &o.Localized)
}

// SetPublished flips the publication flag.
func (p *Post) SetPublished(published bool) {
	p.Published = published
}

// Validate checks the post fields.
func (p *Post) Validate() error {
	if err := p.validateLink(); err != nil {
		return err
	}
	return OptionalMaxLength("thumbnail", p.Thumbnail, MaxThumbnailLength)
}

// Page is a static page.
type Page struct {
	Localized
	LinkRef
	Thumbnail       *string
	CommentsEnabled bool
	Published       bool
}

// NewPage returns a transient page with comments enabled and unpublished.
func NewPage() *Page {
	return &Page{CommentsEnabled: true}
}

// Equal compares identity only.
func (p *Page) Equal(o *Page) bool {
	if p == nil || o == nil {
		return p == o
	}
	return sameIdentity(&p.Localized, &o.Localized)
}

// SetPublished flips the publication flag.
func (p *Page) SetPublished(published bool) {
	p.Published = published
}

// Validate checks the page fields.
func (p *Page) Validate() error {
	if err := p.validateLink(); err != nil {
		return err
	}
	return OptionalMaxLength("thumbnail", p.Thumbnail, MaxThumbnailLength)
}

// Homepage is the landing page of the site.
type Homepage struct {
	Localized
	LinkRef
	Thumbnail *string
}

// Equal compares identity only.
func (h *Homepage) Equal(o *Homepage) bool {
	if h == nil || o == nil {
		return h == o
	}
	return sameIdentity(&h.Localized, &o.Localized)
}

// Validate checks the homepage fields.
func (h *Homepage) Validate() error {
	if err := h.validateLink(); err != nil {
		return err
	}
	return OptionalMaxLength("thumbnail", h.Thumbnail, MaxThumbnailLength)
}

// UserBio is the biography of one user, translated per language.
// UserID is the identity provider subject of the user.
type UserBio struct {
	Localized
	UserID string
}

// Equal compares identity only.
func (b *UserBio) Equal(o *UserBio) bool {
	if b == nil || o == nil {
		return b == o
	}
	return sameIdentity(&b.Localized, &o.Localized)
}

// Validate checks the bio fields.
func (b *UserBio) Validate() error {
	return RequireText("userId", b.UserID, 255)
}
