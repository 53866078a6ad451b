package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Admin routes carry no authentication of their own: the API sits behind
// an upstream gateway that handles it.
func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// public surface
	router.HandlerFunc(http.MethodGet, "/v1/blogposts", app.getPublicBlogpostsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/blogposts/:stringId", app.getPublicBlogpostHandler)
	router.HandlerFunc(http.MethodGet, "/v1/tags", app.getTagsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/projects", app.getPublicProjectsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/projects/:stringId", app.getPublicProjectHandler)
	router.HandlerFunc(http.MethodGet, "/v1/technologies", app.getTechnologiesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/contact", app.contactHandler)

	// blogpost service
	router.HandlerFunc(http.MethodGet, "/v1/admin/blogposts", app.getBlogpostsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/admin/blogposts", app.createBlogpostHandler)
	router.HandlerFunc(http.MethodGet, "/v1/admin/blogposts/:id", app.getBlogpostHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/admin/blogposts/:id", app.updateBlogpostHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/admin/blogposts/:id", app.deleteBlogpostHandler)

	// project service
	router.HandlerFunc(http.MethodGet, "/v1/admin/projects", app.getProjectsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/admin/projects", app.createProjectHandler)
	router.HandlerFunc(http.MethodGet, "/v1/admin/projects/:id", app.getProjectHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/admin/projects/:id", app.updateProjectHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/admin/projects/:id", app.deleteProjectHandler)

	// technology service
	router.HandlerFunc(http.MethodPost, "/v1/admin/technologies", app.createTechnologyHandler)
	router.HandlerFunc(http.MethodGet, "/v1/admin/technologies/:id", app.getTechnologyHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/admin/technologies/:id", app.updateTechnologyHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/admin/technologies/:id", app.deleteTechnologyHandler)

	// user service
	router.HandlerFunc(http.MethodGet, "/v1/admin/users", app.getUsersHandler)
	router.HandlerFunc(http.MethodPost, "/v1/admin/users", app.createUserHandler)
	router.HandlerFunc(http.MethodGet, "/v1/admin/users/:id", app.getUserHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/admin/users/:id", app.deleteUserHandler)

	return app.recoverPanic(app.logRequest(app.rateLimit(router)))
}
