package sqlstore

import (
	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/repository"
)

// PostTable maps posts.
var PostTable = Table[*entity.Post]{
	Name:    "posts",
	Columns: []string{"thumbnail", "comments_enabled", "published"},
	New:     entity.NewPost,
	Base:    func(p *entity.Post) *entity.Localized { return &p.Localized },
	Link:    func(p *entity.Post) *entity.LinkRef { return &p.LinkRef },
	Fields:  func(p *entity.Post) []any { return []any{&p.Thumbnail, &p.CommentsEnabled, &p.Published} },
	Values:  func(p *entity.Post) []any { return []any{nullable(p.Thumbnail), p.CommentsEnabled, p.Published} },
}

// PageTable maps pages.
var PageTable = Table[*entity.Page]{
	Name:    "pages",
	Columns: []string{"thumbnail", "comments_enabled", "published"},
	New:     entity.NewPage,
	Base:    func(p *entity.Page) *entity.Localized { return &p.Localized },
	Link:    func(p *entity.Page) *entity.LinkRef { return &p.LinkRef },
	Fields:  func(p *entity.Page) []any { return []any{&p.Thumbnail, &p.CommentsEnabled, &p.Published} },
	Values:  func(p *entity.Page) []any { return []any{nullable(p.Thumbnail), p.CommentsEnabled, p.Published} },
}

// HomepageTable maps homepages.
var HomepageTable = Table[*entity.Homepage]{
	Name:    "homepages",
	Columns: []string{"thumbnail"},
	New:     func() *entity.Homepage { return &entity.Homepage{} },
	Base:    func(h *entity.Homepage) *entity.Localized { return &h.Localized },
	Link:    func(h *entity.Homepage) *entity.LinkRef { return &h.LinkRef },
	Fields:  func(h *entity.Homepage) []any { return []any{&h.Thumbnail} },
	Values:  func(h *entity.Homepage) []any { return []any{nullable(h.Thumbnail)} },
}

// UserBioTable maps user_bios.
var UserBioTable = Table[*entity.UserBio]{
	Name:    "user_bios",
	Columns: []string{"user_id"},
	New:     func() *entity.UserBio { return &entity.UserBio{} },
	Base:    func(b *entity.UserBio) *entity.Localized { return &b.Localized },
	Fields:  func(b *entity.UserBio) []any { return []any{&b.UserID} },
	Values:  func(b *entity.UserBio) []any { return []any{b.UserID} },
}

// Content tables and their owner columns.
const (
	PostContentTable     = "posts_content_i18n"
	PageContentTable     = "pages_content_i18n"
	HomepageContentTable = "homepages_content_i18n"
	UserBioContentTable  = "user_bios_content_i18n"
)

// Repositories groups everything the services need from one Store.
type Repositories struct {
	Languages repository.LanguageRepository
	Links     repository.LinkRepository

	Posts            repository.AggregateRepository[*entity.Post]
	PostContents     repository.ContentRepository
	Pages            repository.AggregateRepository[*entity.Page]
	PageContents     repository.ContentRepository
	Homepages        repository.AggregateRepository[*entity.Homepage]
	HomepageContents repository.ContentRepository
	UserBios         repository.AggregateRepository[*entity.UserBio]
	UserBioContents  repository.ContentRepository
}

// Repositories wires every repository onto s.
func (s *Store) Repositories() Repositories {
	return Repositories{
		Languages:        s.Languages(),
		Links:            s.Links(),
		Posts:            Aggregates(s, PostTable),
		PostContents:     s.Contents(PostContentTable, "post_id"),
		Pages:            Aggregates(s, PageTable),
		PageContents:     s.Contents(PageContentTable, "page_id"),
		Homepages:        Aggregates(s, HomepageTable),
		HomepageContents: s.Contents(HomepageContentTable, "homepage_id"),
		UserBios:         Aggregates(s, UserBioTable),
		UserBioContents:  s.Contents(UserBioContentTable, "user_bio_id"),
	}
}
