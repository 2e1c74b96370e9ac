package functions

import (
	"context"

	"github.com/newsphere/newsphere-api/internal/dispatch"
	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/pkg/response"
)

// Pages compiles the static page entry point.
func (s *Services) Pages(mount string) *dispatch.Resource {
	return &dispatch.Resource{
		Mount: mount,
		List: func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			pages, err := s.Page.List(ctx, req.Query.Get("published") == "true")
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(pages)
		},
		Get: func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			if slugValue := req.Query.Get("slug"); slugValue != "" {
				page, err := s.Page.GetBySlug(ctx, slugValue)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(page)
			}
			page, err := s.Page.Get(ctx, req.ID)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(page)
		},
		Create: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var payload models.CreatePageRequest
			if err := decode(req, &payload); err != nil {
				return dispatch.Fail(err)
			}
			page, err := s.Page.Create(ctx, payload)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Created(page)
		}),
		Update: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var payload models.UpdatePageRequest
			if err := decode(req, &payload); err != nil {
				return dispatch.Fail(err)
			}
			page, err := s.Page.Update(ctx, req.ID, payload)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(page)
		}),
		Delete: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			if err := s.Page.Delete(ctx, req.ID); err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Message(nil, "Page deleted")
		}),
		Actions: map[string]dispatch.Handler{
			"add-section": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				var payload models.SectionRequest
				if err := decode(req, &payload); err != nil {
					return dispatch.Fail(err)
				}
				page, err := s.Page.AddSection(ctx, req.ID, payload)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.Created(page)
			}),
			"update-section": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				var payload models.SectionRequest
				if err := decode(req, &payload); err != nil {
					return dispatch.Fail(err)
				}
				page, err := s.Page.UpdateSection(ctx, req.ID, req.Query.Get("sectionId"), payload)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(page)
			}),
			"remove-section": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				page, err := s.Page.RemoveSection(ctx, req.ID, req.Query.Get("sectionId"))
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(page)
			}),
		},
		AllowedOrigins: s.AllowedOrigins,
		Logger:         s.Logger,
	}
}

// Categories compiles the category entry point.
func (s *Services) Categories(mount string) *dispatch.Resource {
	return &dispatch.Resource{
		Mount: mount,
		List: func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			categories, err := s.Category.List(ctx, req.Query.Get("active") == "true")
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(categories)
		},
		Get: func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			category, err := s.Category.Get(ctx, req.ID)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(category)
		},
		Create: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var payload models.CreateCategoryRequest
			if err := decode(req, &payload); err != nil {
				return dispatch.Fail(err)
			}
			category, err := s.Category.Create(ctx, payload)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Created(category)
		}),
		Update: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var payload models.CreateCategoryRequest
			if err := decode(req, &payload); err != nil {
				return dispatch.Fail(err)
			}
			category, err := s.Category.Rename(ctx, req.ID, payload.Name)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(category)
		}),
		Delete: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			if err := s.Category.Delete(ctx, req.ID); err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Message(nil, "Category deleted")
		}),
		Actions: map[string]dispatch.Handler{
			"reorder": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				var payload []models.CategoryOrder
				if err := decode(req, &payload); err != nil {
					return dispatch.Fail(err)
				}
				if err := s.Category.Reorder(ctx, payload); err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.Message(nil, "Categories reordered")
			}),
		},
		Toggles: map[string]dispatch.Handler{
			"active": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				category, msg, err := s.Category.ToggleActive(ctx, req.ID)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.Message(category, msg)
			}),
		},
		AllowedOrigins: s.AllowedOrigins,
		Logger:         s.Logger,
	}
}

// MediaLibrary compiles the media entry point. Everything is admin-only.
func (s *Services) MediaLibrary(mount string) *dispatch.Resource {
	return &dispatch.Resource{
		Mount: mount,
		List: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var filter models.MediaFilter
			filter.Folder = req.Query.Get("folder")
			filter.Type = req.Query.Get("type")
			filter.Page, filter.Limit = response.ParsePage(req.Query)

			media, total, err := s.Media.List(ctx, filter)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Page(media, response.NewPagination(filter.Page, filter.Limit, total))
		}),
		Get: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			media, err := s.Media.Get(ctx, req.ID)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(media)
		}),
		Create: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var payload models.CreateMediaRequest
			if err := decode(req, &payload); err != nil {
				return dispatch.Fail(err)
			}
			media, err := s.Media.Register(ctx, payload)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Created(media)
		}),
		Update: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var payload struct {
				Folder string `json:"folder"`
				Alt    string `json:"alt"`
			}
			if err := decode(req, &payload); err != nil {
				return dispatch.Fail(err)
			}
			media, err := s.Media.Update(ctx, req.ID, payload.Folder, payload.Alt)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(media)
		}),
		Delete: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			if err := s.Media.Delete(ctx, req.ID); err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Message(nil, "Media deleted")
		}),
		Actions: map[string]dispatch.Handler{
			"folders": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				folders, err := s.Media.Folders(ctx)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(folders)
			}),
			"bulk-delete": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				var payload struct {
					IDs []string `json:"ids"`
				}
				if err := decode(req, &payload); err != nil {
					return dispatch.Fail(err)
				}
				deleted, err := s.Media.BulkDelete(ctx, payload.IDs)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(map[string]int64{"deleted": deleted})
			}),
		},
		AllowedOrigins: s.AllowedOrigins,
		Logger:         s.Logger,
	}
}

// SiteSettings compiles the settings entry point. Reads are public so the
// storefront can render; writes require auth.
func (s *Services) SiteSettings(mount string) *dispatch.Resource {
	return &dispatch.Resource{
		Mount: mount,
		Actions: map[string]dispatch.Handler{
			"site": func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				if req.Method == "PUT" {
					return s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
						var payload models.UpdateSiteSettingsRequest
						if err := decode(req, &payload); err != nil {
							return dispatch.Fail(err)
						}
						settings, err := s.Settings.UpdateSiteSettings(ctx, payload)
						if err != nil {
							return dispatch.Fail(err)
						}
						return dispatch.OK(settings)
					})(ctx, req)
				}
				settings, err := s.Settings.SiteSettings(ctx)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(settings)
			},
			"home": func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				if req.Method == "PUT" {
					return s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
						var payload models.UpdateHomeContentRequest
						if err := decode(req, &payload); err != nil {
							return dispatch.Fail(err)
						}
						content, err := s.Settings.UpdateHomeContent(ctx, payload)
						if err != nil {
							return dispatch.Fail(err)
						}
						return dispatch.OK(content)
					})(ctx, req)
				}
				content, err := s.Settings.HomeContent(ctx)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(content)
			},
		},
		AllowedOrigins: s.AllowedOrigins,
		Logger:         s.Logger,
	}
}

// AdminDashboard compiles the dashboard entry point.
func (s *Services) AdminDashboard(mount string) *dispatch.Resource {
	return &dispatch.Resource{
		Mount: mount,
		List: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			stats, err := s.Dashboard.Stats(ctx)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(stats)
		}),
		AllowedOrigins: s.AllowedOrigins,
		Logger:         s.Logger,
	}
}
