// Package handlers implements the HTTP surface of the short link service.
package handlers

import (
	"net/http"
	"strings"

	"shortlinks/internal/audit"
	"shortlinks/internal/config"
	"shortlinks/internal/domain/models"
	"shortlinks/internal/services"
	"shortlinks/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// QRCodeSize is the edge length of generated QR images in pixels.
const QRCodeSize = 256

// Controller holds the dependencies of the HTTP handlers.
type Controller struct {
	conf           *config.Config
	urlService     services.URLService
	statsService   services.StatsService
	storageService storage.LinkStorage
	notifier       audit.Notifier
	sugar          *zap.SugaredLogger
}

// NewController creates a Controller. A nil notifier disables audit entries.
func NewController(composite *services.CompositeService, notifier audit.Notifier, sugar *zap.SugaredLogger, conf *config.Config) *Controller {
	if notifier == nil {
		notifier = audit.Nop{}
	}
	return &Controller{
		conf:           conf,
		urlService:     composite.URLService,
		statsService:   composite.StatsService,
		storageService: composite.StorageService,
		notifier:       notifier,
		sugar:          sugar,
	}
}

// ShortenURL handles POST /shorturls.
func (con *Controller) ShortenURL() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		body, err := decodeShortenRequest(req)
		if err != nil {
			con.sugar.Debugw("undecodable shorten request", "error", err)
			con.notifier.Notify(audit.Stack, audit.LevelError, "handler", "Invalid request body")
			writeError(res, http.StatusBadRequest, msgInvalidBody)
			return
		}

		link, err := con.urlService.Shorten(body.createRequest())
		if err != nil {
			con.writeServiceError(res, err)
			return
		}

		writeJSON(res, http.StatusCreated, models.ShortenResponse{
			ShortLink: con.shortLink(link.Shortcode),
			Expiry:    models.Timestamp(link.Expiry),
		})
	}
}

// GetLinkStats handles GET /shorturls/{shortcode}.
func (con *Controller) GetLinkStats() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		detail, err := con.statsService.Detail(chi.URLParam(req, "shortcode"))
		if err != nil {
			con.writeServiceError(res, err)
			return
		}
		writeJSON(res, http.StatusOK, detail)
	}
}

// ListLinks handles GET /shorturls.
func (con *Controller) ListLinks() http.HandlerFunc {
	return func(res http.ResponseWriter, _ *http.Request) {
		items := con.statsService.SummaryList()
		if items == nil {
			items = []models.LinkSummary{}
		}
		writeJSON(res, http.StatusOK, models.LinkList{Items: items})
	}
}

// GetQRCode handles GET /shorturls/{shortcode}/qr. It does not count as a click.
func (con *Controller) GetQRCode() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		code := chi.URLParam(req, "shortcode")
		if _, err := con.storageService.Get(code); err != nil {
			con.writeServiceError(res, err)
			return
		}

		png, err := qrcode.Encode(con.shortLink(code), qrcode.Medium, QRCodeSize)
		if err != nil {
			con.sugar.Errorw("qr encode failed", "shortcode", code, "error", err)
			writeError(res, http.StatusInternalServerError, msgInternal)
			return
		}

		res.Header().Set("Content-Type", "image/png")
		res.Header().Set("Content-Disposition", "inline; filename="+code+".png")
		res.WriteHeader(http.StatusOK)
		if _, err := res.Write(png); err != nil {
			con.sugar.Debugw("qr write failed", "error", err)
		}
	}
}

// Redirect handles GET /{shortcode}: records the click and answers 302.
func (con *Controller) Redirect() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		dest, err := con.urlService.Resolve(chi.URLParam(req, "shortcode"), services.Visit{
			RemoteAddr: req.RemoteAddr,
			Referrer:   req.Referer(),
		})
		if err != nil {
			con.writeServiceError(res, err)
			return
		}
		http.Redirect(res, req, dest, http.StatusFound)
	}
}

// NotFound answers unmatched routes.
func (con *Controller) NotFound() http.HandlerFunc {
	return func(res http.ResponseWriter, _ *http.Request) {
		writeError(res, http.StatusNotFound, msgNotFound)
	}
}

// MethodNotAllowed answers matched routes with an unsupported method.
func (con *Controller) MethodNotAllowed() http.HandlerFunc {
	return func(res http.ResponseWriter, _ *http.Request) {
		writeError(res, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

func (con *Controller) shortLink(code string) string {
	return strings.TrimRight(con.conf.BaseURL, "/") + "/" + code
}

func (con *Controller) writeServiceError(res http.ResponseWriter, err error) {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		con.sugar.Errorw("request failed", "error", err)
	}
	writeError(res, status, msg)
}
