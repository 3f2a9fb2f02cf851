package rest

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/internal/view"
	"github.com/rocketscienceinc/tictactoe-web/transport/cookie"
)

func (that *Server) handleIndex(writer http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	log := that.logger.With("method", "handleIndex")

	session, err := that.game.Open(req.Context(), cookie.SessionID(req))
	if err != nil {
		log.Error("failed to open session", "error", err)
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cookie.SetSession(writer, req, session.ID, that.sessionTTL)

	var body bytes.Buffer
	if err = that.renderer.Page(&body, view.NewPage(session.Game)); err != nil {
		log.Error("failed to render page", "error", err)
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.Header().Set("Cache-Control", "no-store")
	writer.WriteHeader(http.StatusOK)

	if _, err = body.WriteTo(writer); err != nil {
		log.Error("failed to write page", "error", err)
	}
}

func (that *Server) handleMove(writer http.ResponseWriter, req *http.Request, params httprouter.Params) {
	cell, err := strconv.Atoi(params.ByName("cell"))
	if err != nil {
		http.Error(writer, "invalid cell", http.StatusBadRequest)
		return
	}

	session, err := that.game.MakeMove(req.Context(), cookie.SessionID(req), cell)
	that.respond(writer, req, "handleMove", session, err)
}

func (that *Server) handleJump(writer http.ResponseWriter, req *http.Request, params httprouter.Params) {
	step, err := strconv.Atoi(params.ByName("step"))
	if err != nil {
		http.Error(writer, "invalid step", http.StatusBadRequest)
		return
	}

	session, err := that.game.JumpTo(req.Context(), cookie.SessionID(req), step)
	that.respond(writer, req, "handleJump", session, err)
}

func (that *Server) handleNew(writer http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	session, err := that.game.Restart(req.Context(), cookie.SessionID(req))
	that.respond(writer, req, "handleNew", session, err)
}

// respond redirects back to the board after a successful click.
func (that *Server) respond(writer http.ResponseWriter, req *http.Request, method string, session *usecase.Session, err error) {
	log := that.logger.With("method", method)

	switch {
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrInvalidStep):
		log.Debug("bad request", "error", err)
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Error("failed to handle click", "error", err)
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cookie.SetSession(writer, req, session.ID, that.sessionTTL)
	http.Redirect(writer, req, "/", http.StatusSeeOther)
}

func (that *Server) handlePanic(writer http.ResponseWriter, req *http.Request, recovered any) {
	that.logger.Error("recovered from panic", "path", req.URL.Path, "panic", recovered)
	http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
}
