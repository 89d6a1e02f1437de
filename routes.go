package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"

	"github.com/venkatesh7569/portfolio/internal/contact"
)

func newRouter(templateGlob string, contacts *contact.Handler) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery(), securityHeaders())
	r.LoadHTMLGlob(templateGlob)

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"fullName":   FullName,
			"tagline":    Tagline,
			"portrait":   Portrait,
			"aboutMe":    AboutMe,
			"quote":      Quote,
			"skills":     Skills,
			"projects":   Projects,
			"experience": Experience,
			"education":  Education,
			"contact":    contactView(c, contact.Submission{}, contact.Result{Status: contact.StatusIdle}),
		})
	})

	r.GET("/projects-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "projects-content.html", gin.H{"projects": Projects})
	})

	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "timeline.html", gin.H{"heading": "Experience", "entries": Experience})
	})

	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "timeline.html", gin.H{"heading": "Education", "entries": Education})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	setupContactRoutes(r, contacts)
	return r
}

func setupContactRoutes(r *gin.Engine, contacts *contact.Handler) {
	// HTMX contact form fragment, always empty.
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", contactView(c, contact.Submission{}, contact.Result{Status: contact.StatusIdle}))
	})

	r.POST("/contact", func(c *gin.Context) {
		sub := contact.Submission{
			Name:    c.PostForm(string(contact.FieldName)),
			Email:   c.PostForm(string(contact.FieldEmail)),
			Message: c.PostForm(string(contact.FieldMessage)),
		}

		res, err := contacts.Submit(c.Request.Context(), &sub)

		code := http.StatusOK
		var verr contact.ValidationErrors
		switch {
		case err == nil:
		case errors.As(err, &verr):
			code = http.StatusUnprocessableEntity
		case errors.Is(err, contact.ErrDuplicateSubmission):
			code = http.StatusConflict
		case errors.Is(err, contact.ErrDeliveryFailed):
			code = http.StatusBadGateway
		default:
			code = http.StatusInternalServerError
		}
		// htmx only swaps 2xx responses.
		if c.GetHeader("HX-Request") == "true" {
			code = http.StatusOK
		}

		c.HTML(code, "contact.html", contactView(c, sub, res))
	})
}

func contactView(c *gin.Context, sub contact.Submission, res contact.Result) gin.H {
	invalid := make(map[string]bool, len(res.Invalid))
	for f := range res.Invalid {
		invalid[string(f)] = true
	}
	return gin.H{
		"form":      sub,
		"status":    string(res.Status),
		"notice":    res.Status.Notice(),
		"invalid":   invalid,
		"csrfField": csrfFieldName,
		"csrfToken": csrf.Token(c.Request),
	}
}
