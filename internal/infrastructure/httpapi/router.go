// Package httpapi exposes the family tree services over HTTP.
package httpapi

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Sid-0307/Kudumbam/internal/application/handlers"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/config"
)

// Handlers groups the application handlers the router dispatches to.
type Handlers struct {
	Families      *handlers.FamilyHandler
	Persons       *handlers.PersonHandler
	Relationships *handlers.RelationshipHandler
	Layout        *handlers.LayoutHandler
	Relations     *handlers.RelationsHandler
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Server      config.ServerConfig
	RateLimit   config.RateLimitConfig
	ServiceName string
	Logger      *slog.Logger
}

type api struct {
	h   Handlers
	log *slog.Logger
}

// NewRouter builds the gin engine with middleware and all routes registered.
func NewRouter(opts RouterOptions, h Handlers) (*gin.Engine, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	router := gin.New()
	router.Use(recoverer(log), requestLogger(log), cors(opts.Server.CORSOrigin))
	if opts.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	router.Use(observe())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	a := &api{h: h, log: log}
	apiGroup := router.Group("/api", bodyLimit(opts.Server.BodyLimit))
	if opts.RateLimit.Enabled {
		limiter, err := newClientLimiter(opts.RateLimit)
		if err != nil {
			return nil, err
		}
		apiGroup.Use(limiter.middleware())
	}

	apiGroup.POST("/families", a.createFamily)
	apiGroup.GET("/families/:token", a.getFamily)
	apiGroup.GET("/families/:token/relations", a.computeRelations)
	apiGroup.GET("/families/:token/diagram", a.diagram)

	apiGroup.POST("/persons", a.createPerson)
	apiGroup.PUT("/persons/:id", a.updatePerson)
	apiGroup.DELETE("/persons/:id", a.deletePerson)

	apiGroup.POST("/relationships", a.createRelationship)
	apiGroup.DELETE("/relationships/:id", a.deleteRelationship)

	apiGroup.POST("/layout", a.saveLayout)
	apiGroup.GET("/layout/:token", a.getLayout)

	return router, nil
}

// bindJSON decodes the request body into req. Malformed bodies are invalid input.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: malformed request body", services.ErrInvalidInput)
	}
	return nil
}

type tokenBody struct {
	FamilyToken string `json:"familyToken"`
}

// familyToken reads familyToken from the body, falling back to the query string.
func familyToken(c *gin.Context) (string, error) {
	var body tokenBody
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: malformed request body", services.ErrInvalidInput)
		}
	}
	if body.FamilyToken == "" {
		body.FamilyToken = c.Query("familyToken")
	}
	if body.FamilyToken == "" {
		return "", fmt.Errorf("%w: familyToken is required", services.ErrInvalidInput)
	}
	return body.FamilyToken, nil
}

func (a *api) createFamily(c *gin.Context) {
	res, err := a.h.Families.HandleCreate(c.Request.Context())
	if err != nil {
		writeError(c, a.log, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (a *api) getFamily(c *gin.Context) {
	data, err := a.h.Families.HandleGet(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (a *api) computeRelations(c *gin.Context) {
	view, err := a.h.Relations.HandleCompute(c.Request.Context(), c.Param("token"), c.Query("root"))
	if err != nil {
		writeError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (a *api) diagram(c *gin.Context) {
	d, err := a.h.Relations.HandleDiagram(c.Request.Context(), c.Param("token"), c.Query("root"))
	if err != nil {
		writeError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *api) createPerson(c *gin.Context) {
	var req handlers.CreatePersonRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, a.log, err)
		return
	}
	p, err := a.h.Persons.HandleCreate(c.Request.Context(), req)
	if err != nil {
		writeError(c, a.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (a *api) updatePerson(c *gin.Context) {
	var req handlers.UpdatePersonRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, a.log, err)
		return
	}
	p, err := a.h.Persons.HandleUpdate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *api) deletePerson(c *gin.Context) {
	token, err := familyToken(c)
	if err != nil {
		writeError(c, a.log, err)
		return
	}
	if err := a.h.Persons.HandleDelete(c.Request.Context(), token, c.Param("id")); err != nil {
		writeError(c, a.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) createRelationship(c *gin.Context) {
	var req handlers.CreateRelationshipRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, a.log, err)
		return
	}
	rel, err := a.h.Relationships.HandleCreate(c.Request.Context(), req)
	if err != nil {
		writeError(c, a.log, err)
		return
	}
	c.JSON(http.StatusCreated, rel)
}

func (a *api) deleteRelationship(c *gin.Context) {
	token, err := familyToken(c)
	if err != nil {
		writeError(c, a.log, err)
		return
	}
	if err := a.h.Relationships.HandleDelete(c.Request.Context(), token, c.Param("id")); err != nil {
		writeError(c, a.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) saveLayout(c *gin.Context) {
	var req handlers.SaveLayoutRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, a.log, err)
		return
	}
	res, err := a.h.Layout.HandleSave(c.Request.Context(), req)
	if err != nil {
		writeError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (a *api) getLayout(c *gin.Context) {
	positions, err := a.h.Layout.HandleGet(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, positions)
}
