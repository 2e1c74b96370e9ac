// Package functions compiles the domain services into one-shot entry
// points. Each Resource maps to a single deployed URL; the dispatcher
// multiplexes method, id and action within it.
package functions

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/dispatch"
	"github.com/newsphere/newsphere-api/internal/gnews"
	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/service"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
	"github.com/newsphere/newsphere-api/pkg/response"
)

// Services bundles everything the entry points call into.
type Services struct {
	News      *service.NewsService
	Blog      *service.BlogService
	Page      *service.PageService
	Category  *service.CategoryService
	Media     *service.MediaService
	Enquiry   *service.EnquiryService
	Auth      *service.AuthService
	Reader    *service.ReaderService
	Settings  *service.SettingsService
	Dashboard *service.DashboardService
	Live      *service.LiveService

	AllowedOrigins []string
	Logger         *zap.Logger
}

func decode(req *dispatch.Request, dst interface{}) error {
	if req.Body == nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid payload")
	}
	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
	}
	return nil
}

func boolFlag(raw string) *bool {
	switch strings.ToLower(raw) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

// verify adapts AuthService.Verify for the dispatch auth wrapper.
func (s *Services) verify(ctx context.Context, token string) error {
	_, err := s.Auth.Verify(ctx, token)
	return err
}

func (s *Services) guard(handler dispatch.Handler) dispatch.Handler {
	return dispatch.WithAuth(s.verify, handler)
}

// NewsFeed compiles the news entry point. Reads and view recording are
// public; mutations require a bearer token.
func (s *Services) NewsFeed(mount string) *dispatch.Resource {
	return &dispatch.Resource{
		Mount: mount,
		List: func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var filter models.NewsFilter
			filter.Category = req.Query.Get("category")
			filter.Search = strings.TrimSpace(req.Query.Get("search"))
			filter.Featured = boolFlag(req.Query.Get("featured"))
			filter.Trending = boolFlag(req.Query.Get("trending"))
			filter.Page, filter.Limit = response.ParsePage(req.Query)

			articles, total, err := s.News.List(ctx, filter)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Page(articles, response.NewPagination(filter.Page, filter.Limit, total))
		},
		Get: func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			if slugValue := req.Query.Get("slug"); slugValue != "" {
				article, err := s.News.GetBySlug(ctx, slugValue)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(article)
			}
			article, err := s.News.Get(ctx, req.ID)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(article)
		},
		Create: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var payload models.CreateNewsRequest
			if err := decode(req, &payload); err != nil {
				return dispatch.Fail(err)
			}
			article, err := s.News.Create(ctx, payload)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Created(article)
		}),
		Update: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var payload models.UpdateNewsRequest
			if err := decode(req, &payload); err != nil {
				return dispatch.Fail(err)
			}
			article, err := s.News.Update(ctx, req.ID, payload)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(article)
		}),
		Delete: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			if err := s.News.Delete(ctx, req.ID); err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Message(nil, "News article deleted")
		}),
		Actions: map[string]dispatch.Handler{
			"all": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				var filter models.NewsFilter
				filter.Category = req.Query.Get("category")
				filter.Search = strings.TrimSpace(req.Query.Get("search"))
				filter.Page, filter.Limit = response.ParsePage(req.Query)

				articles, total, err := s.News.List(ctx, filter)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.Page(articles, response.NewPagination(filter.Page, filter.Limit, total))
			}),
			"view": func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				views, err := s.News.RecordView(ctx, req.ID)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(map[string]int64{"views": views})
			},
			"stats": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				stats, err := s.News.Stats(ctx)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(stats)
			}),
		},
		Toggles: map[string]dispatch.Handler{
			"featured": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				article, msg, err := s.News.ToggleFeatured(ctx, req.ID)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.Message(article, msg)
			}),
			"trending": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				article, msg, err := s.News.ToggleTrending(ctx, req.ID)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.Message(article, msg)
			}),
		},
		AllowedOrigins: s.AllowedOrigins,
		Logger:         s.Logger,
	}
}

// Blogs compiles the blog entry point. Unauthenticated callers only see
// published posts.
func (s *Services) Blogs(mount string) *dispatch.Resource {
	return &dispatch.Resource{
		Mount: mount,
		List: func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var filter models.BlogFilter
			filter.Status = string(models.BlogPublished)
			filter.Search = strings.TrimSpace(req.Query.Get("search"))
			filter.Tag = req.Query.Get("tag")
			filter.Page, filter.Limit = response.ParsePage(req.Query)

			blogs, total, err := s.Blog.List(ctx, filter)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Page(blogs, response.NewPagination(filter.Page, filter.Limit, total))
		},
		Get: func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			if slugValue := req.Query.Get("slug"); slugValue != "" {
				blog, err := s.Blog.GetBySlug(ctx, slugValue)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(blog)
			}
			blog, err := s.Blog.Get(ctx, req.ID)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(blog)
		},
		Create: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var payload models.CreateBlogRequest
			if err := decode(req, &payload); err != nil {
				return dispatch.Fail(err)
			}
			blog, err := s.Blog.Create(ctx, payload)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Created(blog)
		}),
		Update: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var payload models.UpdateBlogRequest
			if err := decode(req, &payload); err != nil {
				return dispatch.Fail(err)
			}
			blog, err := s.Blog.Update(ctx, req.ID, payload)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(blog)
		}),
		Delete: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			if err := s.Blog.Delete(ctx, req.ID); err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Message(nil, "Blog post deleted")
		}),
		Toggles: map[string]dispatch.Handler{
			"publish": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				blog, msg, err := s.Blog.Publish(ctx, req.ID)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.Message(blog, msg)
			}),
		},
		AllowedOrigins: s.AllowedOrigins,
		Logger:         s.Logger,
	}
}

// Enquiries compiles the enquiry entry point. Submission is public.
func (s *Services) Enquiries(mount string) *dispatch.Resource {
	return &dispatch.Resource{
		Mount: mount,
		List: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var filter models.EnquiryFilter
			filter.Status = req.Query.Get("status")
			filter.Important = boolFlag(req.Query.Get("important"))
			filter.Search = strings.TrimSpace(req.Query.Get("search"))
			filter.Page, filter.Limit = response.ParsePage(req.Query)

			enquiries, total, err := s.Enquiry.List(ctx, filter)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Page(enquiries, response.NewPagination(filter.Page, filter.Limit, total))
		}),
		Get: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			enquiry, err := s.Enquiry.Get(ctx, req.ID)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(enquiry)
		}),
		Create: func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			var payload models.CreateEnquiryRequest
			if err := decode(req, &payload); err != nil {
				return dispatch.Fail(err)
			}
			enquiry, err := s.Enquiry.Submit(ctx, payload)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Created(enquiry)
		},
		Delete: s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			if err := s.Enquiry.Delete(ctx, req.ID); err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.Message(nil, "Enquiry deleted")
		}),
		Actions: map[string]dispatch.Handler{
			"reply": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				var payload struct {
					Message string `json:"message"`
				}
				if err := decode(req, &payload); err != nil {
					return dispatch.Fail(err)
				}
				enquiry, err := s.Enquiry.Reply(ctx, req.ID, payload.Message)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.Message(enquiry, "Reply recorded")
			}),
			"stats": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				stats, err := s.Enquiry.Stats(ctx)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(stats)
			}),
			"bulk-delete": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				var payload struct {
					IDs []string `json:"ids"`
				}
				if err := decode(req, &payload); err != nil {
					return dispatch.Fail(err)
				}
				deleted, err := s.Enquiry.BulkDelete(ctx, payload.IDs)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(map[string]int64{"deleted": deleted})
			}),
		},
		Toggles: map[string]dispatch.Handler{
			"archive": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				enquiry, msg, err := s.Enquiry.Archive(ctx, req.ID)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.Message(enquiry, msg)
			}),
			"important": s.guard(func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				enquiry, msg, err := s.Enquiry.ToggleImportant(ctx, req.ID)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.Message(enquiry, msg)
			}),
		},
		AllowedOrigins: s.AllowedOrigins,
		Logger:         s.Logger,
	}
}

// Readers compiles the reader entry point. Everything runs on the
// reader's clerk identity rather than admin auth.
func (s *Services) Readers(mount string) *dispatch.Resource {
	return &dispatch.Resource{
		Mount: mount,
		Get: func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
			articles, err := s.Reader.SavedArticles(ctx, req.ID)
			if err != nil {
				return dispatch.Fail(err)
			}
			return dispatch.OK(articles)
		},
		Actions: map[string]dispatch.Handler{
			"sync": func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				var payload models.SyncReaderRequest
				if err := decode(req, &payload); err != nil {
					return dispatch.Fail(err)
				}
				reader, err := s.Reader.Sync(ctx, payload)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(reader)
			},
			"save": func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				var payload models.SaveArticleRequest
				if err := decode(req, &payload); err != nil {
					return dispatch.Fail(err)
				}
				reader, msg, err := s.Reader.ToggleSave(ctx, payload)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.Message(reader, msg)
			},
		},
		AllowedOrigins: s.AllowedOrigins,
		Logger:         s.Logger,
	}
}

// Authentication compiles the auth entry point.
func (s *Services) Authentication(mount string) *dispatch.Resource {
	return &dispatch.Resource{
		Mount: mount,
		Actions: map[string]dispatch.Handler{
			"setup": func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				var payload models.SetupRequest
				if err := decode(req, &payload); err != nil {
					return dispatch.Fail(err)
				}
				login, err := s.Auth.Setup(ctx, payload)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.Created(login)
			},
			"login": func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				var payload models.LoginRequest
				if err := decode(req, &payload); err != nil {
					return dispatch.Fail(err)
				}
				login, err := s.Auth.Login(ctx, payload)
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(login)
			},
			"verify": func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				admin, err := s.Auth.Verify(ctx, bearer(req))
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(models.AdminInfo{ID: admin.ID, Email: admin.Email, Name: admin.Name, Role: admin.Role})
			},
			"me": func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				admin, err := s.Auth.Verify(ctx, bearer(req))
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(models.AdminInfo{ID: admin.ID, Email: admin.Email, Name: admin.Name, Role: admin.Role})
			},
		},
		AllowedOrigins: s.AllowedOrigins,
		Logger:         s.Logger,
	}
}

func bearer(req *dispatch.Request) string {
	parts := strings.SplitN(req.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Live compiles the upstream proxy entry point.
func (s *Services) LiveNews(mount string) *dispatch.Resource {
	return &dispatch.Resource{
		Mount: mount,
		Actions: map[string]dispatch.Handler{
			"headlines": func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				articles, err := s.Live.Headlines(ctx, gnews.HeadlinesQuery{
					Category: req.Query.Get("category"),
					Country:  req.Query.Get("country"),
					Max:      queryInt(req, "max"),
					From:     req.Query.Get("from"),
					To:       req.Query.Get("to"),
				})
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(articles)
			},
			"search": func(ctx context.Context, req *dispatch.Request) *dispatch.Result {
				articles, err := s.Live.Search(ctx, gnews.SearchQuery{
					Q:       req.Query.Get("q"),
					Country: req.Query.Get("country"),
					Max:     queryInt(req, "max"),
					From:    req.Query.Get("from"),
					To:      req.Query.Get("to"),
				})
				if err != nil {
					return dispatch.Fail(err)
				}
				return dispatch.OK(articles)
			},
		},
		AllowedOrigins: s.AllowedOrigins,
		Logger:         s.Logger,
	}
}

func queryInt(req *dispatch.Request, key string) int {
	n, err := strconv.Atoi(req.Query.Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
