package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContent(lang uuid.UUID, title string) *Content {
	return &Content{ID: uuid.New(), LanguageID: lang, Title: title, Body: "body"}
}

func TestLocalized_AddContent(t *testing.T) {
	post := NewPost()
	post.AssignID(uuid.New())
	en := newContent(uuid.New(), "Welcome")

	post.AddContent(en)

	assert.Equal(t, post.ID, en.OwnerID)
	assert.True(t, post.HasContent(en.LanguageID))
	assert.Len(t, post.Contents(), 1)
}

func TestLocalized_AddContent_NilIsIgnored(t *testing.T) {
	post := NewPost()
	post.AddContent(nil)
	post.RemoveContent(nil)
	assert.Empty(t, post.Contents())
}

func TestLocalized_RemoveContent(t *testing.T) {
	page := NewPage()
	page.AssignID(uuid.New())
	en := newContent(uuid.New(), "Welcome")
	de := newContent(uuid.New(), "Willkommen")
	page.AddContent(en)
	page.AddContent(de)

	// a separately loaded instance of the same record detaches as well
	loaded := *en
	page.RemoveContent(&loaded)

	assert.Equal(t, uuid.Nil, loaded.OwnerID)
	assert.False(t, page.HasContent(en.LanguageID))
	got := page.Contents()
	require.Len(t, got, 1)
	assert.Equal(t, "Willkommen", got[0].Title)
}

func TestLocalized_RemoveContent_OtherRecordSameLanguage(t *testing.T) {
	post := NewPost()
	en := newContent(uuid.New(), "Welcome")
	post.AddContent(en)

	stranger := newContent(en.LanguageID, "Other")
	post.RemoveContent(stranger)

	assert.True(t, post.HasContent(en.LanguageID))
}

func TestLocalized_Contents_EmptyIsNotNil(t *testing.T) {
	var bio UserBio
	got := bio.Contents()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLocalized_Contents_IsSnapshot(t *testing.T) {
	post := NewPost()
	kw := "go"
	en := newContent(uuid.New(), "Welcome")
	en.Keywords = &kw
	post.AddContent(en)

	snap := post.Contents()
	snap[0].Title = "changed"
	*snap[0].Keywords = "changed"
	_ = append(snap, Content{Title: "extra"})

	again := post.Contents()
	require.Len(t, again, 1)
	assert.Equal(t, "Welcome", again[0].Title)
	assert.Equal(t, "go", *again[0].Keywords)
}

func TestLocalized_AssignID_RepointsContent(t *testing.T) {
	home := &Homepage{}
	en := newContent(uuid.New(), "Home")
	home.AddContent(en)
	assert.Equal(t, uuid.Nil, en.OwnerID)

	id := uuid.New()
	home.AssignID(id)
	assert.Equal(t, id, en.OwnerID)
}

func TestLocalized_Touch_Monotonic(t *testing.T) {
	post := NewPost()
	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	post.Touch(t1)
	assert.Equal(t, t1, post.CreatedAt)
	assert.Equal(t, t1, post.UpdatedAt)

	post.Touch(t1.Add(-time.Hour))
	assert.Equal(t, t1, post.UpdatedAt)
	assert.Equal(t, t1, post.CreatedAt)

	post.Touch(t1.Add(time.Minute))
	assert.Equal(t, t1.Add(time.Minute), post.UpdatedAt)
	assert.Equal(t, t1, post.CreatedAt)
}

func TestEquality_IdentityOnly(t *testing.T) {
	id := uuid.New()
	a := NewPost()
	a.AssignID(id)
	b := NewPost()
	b.AssignID(id)
	b.Published = true
	b.AddContent(newContent(uuid.New(), "x"))

	assert.True(t, a.Equal(b))

	c := NewPost()
	c.AssignID(uuid.New())
	assert.False(t, a.Equal(c))
}

func TestEquality_TransientInstancesAreDistinct(t *testing.T) {
	a, b := NewPost(), NewPost()
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(nil))

	x, y := &UserBio{UserID: "u"}, &UserBio{UserID: "u"}
	assert.False(t, x.Equal(y))
}

func TestLinkRef_DefensiveCopies(t *testing.T) {
	link := &Link{ID: uuid.New(), Name: "Blog", URL: "https://example.com", Scope: LinkScopeInternal}
	post := NewPost()
	post.SetLink(link)

	link.Name = "mutated after set"
	got := post.Link()
	require.NotNil(t, got)
	assert.Equal(t, "Blog", got.Name)

	got.Name = "mutated after get"
	assert.Equal(t, "Blog", post.Link().Name)
	assert.Equal(t, link.ID, post.LinkID())
}

func TestPost_Defaults(t *testing.T) {
	p := NewPost()
	assert.True(t, p.CommentsEnabled)
	assert.False(t, p.Published)
	assert.Nil(t, p.Link())
	assert.Equal(t, uuid.Nil, p.LinkID())
}

func TestAggregates_Validate(t *testing.T) {
	long := string(make([]byte, MaxThumbnailLength+1))
	link := &Link{ID: uuid.New()}

	p := NewPost()
	assert.Error(t, p.Validate(), "link is required")
	p.SetLink(link)
	assert.NoError(t, p.Validate())
	p.Thumbnail = &long
	assert.Error(t, p.Validate())

	h := &Homepage{}
	h.SetLink(link)
	assert.NoError(t, h.Validate())

	assert.Error(t, (&UserBio{}).Validate())
	assert.NoError(t, (&UserBio{UserID: "auth0|42"}).Validate())
}

func TestContent_Validate(t *testing.T) {
	c := newContent(uuid.New(), "Title")
	assert.NoError(t, c.Validate())

	c.Title = " "
	assert.Error(t, c.Validate())

	c = newContent(uuid.Nil, "Title")
	assert.Error(t, c.Validate())

	c = newContent(uuid.New(), "Title")
	c.Body = ""
	assert.Error(t, c.Validate())
}

var (
	_ Publishable = (*Post)(nil)
	_ Publishable = (*Page)(nil)
	_ Aggregate   = (*Homepage)(nil)
	_ Aggregate   = (*UserBio)(nil)
)
