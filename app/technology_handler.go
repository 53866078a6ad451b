package main

import (
	"errors"
	"net/http"

	"github.com/abrabant/brabantapi/internal/common"
	"github.com/abrabant/brabantapi/internal/techservice"
)

func (app *application) getTechnologiesHandler(w http.ResponseWriter, r *http.Request) {
	technologies, err := app.technologyService.List(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"technologies": technologies}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) createTechnologyHandler(w http.ResponseWriter, r *http.Request) {
	var input techservice.CreateTechnologyRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	technology, err := app.technologyService.Create(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, techservice.ErrDuplicateName):
			app.conflictErrorResponse(w, r, "name", "a technology with this name already exists")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"technology": technology}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getTechnologyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	technology, err := app.technologyService.FindByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, techservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"technology": technology}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) updateTechnologyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input techservice.EditTechnologyRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	technology, err := app.technologyService.Edit(r.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, techservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, techservice.ErrDuplicateName):
			app.conflictErrorResponse(w, r, "name", "a technology with this name already exists")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"technology": technology}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteTechnologyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	deleted, err := app.technologyService.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"deleted": deleted}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
