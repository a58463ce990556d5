package web

import (
	"net/http"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the forum routes. ssl enables HTTPS-only headers.
func NewRouter(h *Handler, ssl bool) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}
	if ssl {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	router.Use(secure.New(secureConfig))

	router.SetHTMLTemplate(tmpl)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	router.GET("/", h.ListPosts)
	router.GET("/n/:subreddit", h.ListSubreddit)

	router.GET("/posts/new", h.NewPost)
	router.POST("/posts/new", h.CreatePost)
	router.GET("/posts/:id", h.ShowPost)

	router.POST("/posts/:id/comments", h.CreateComment)
	router.GET("/posts/:id/comments/live", h.LiveComments)

	router.NoRoute(func(c *gin.Context) {
		renderError(c, http.StatusNotFound, "Page not found")
	})

	return router, nil
}
