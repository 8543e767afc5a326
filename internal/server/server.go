package server

import (
	"context"
	"errors"
	"fmt"
	"infinity-park/internal/apperr"
	"infinity-park/internal/dto"
	"infinity-park/internal/handler"
	"infinity-park/internal/itinerary"
	"infinity-park/internal/logger"
	"infinity-park/internal/middleware"
	"infinity-park/internal/model"
	"infinity-park/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Services groups everything the HTTP layer calls into.
type Services struct {
	Auth       service.AuthService
	Catalog    service.CatalogService
	Purchase   service.PurchaseService
	Itinerary  service.ItineraryService
	Engagement service.EngagementService
}

type Server struct {
	echo              *echo.Echo
	log               *logger.Logger
	tokens            middleware.TokenParser
	authHandler       *handler.AuthHandler
	catalogHandler    *handler.CatalogHandler
	purchaseHandler   *handler.PurchaseHandler
	itineraryHandler  *handler.ItineraryHandler
	engagementHandler *handler.EngagementHandler
}

func NewServer(log *logger.Logger, tokens middleware.TokenParser, services Services, drafts *itinerary.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	e.Use(log.EchoMiddleware())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:              e,
		log:               log,
		tokens:            tokens,
		authHandler:       handler.NewAuthHandler(services.Auth, services.Engagement),
		catalogHandler:    handler.NewCatalogHandler(services.Catalog),
		purchaseHandler:   handler.NewPurchaseHandler(services.Purchase),
		itineraryHandler:  handler.NewItineraryHandler(services.Itinerary, drafts),
		engagementHandler: handler.NewEngagementHandler(services.Engagement),
	}
	e.HTTPErrorHandler = s.handleError

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api", middleware.Session(s.tokens))

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	api.POST("/auth/register", s.authHandler.Register)
	api.POST("/auth/login", s.authHandler.Login)
	api.GET("/me", s.authHandler.Profile)
	api.PUT("/me/password", s.authHandler.ChangePassword)

	// -------- catalog --------
	api.GET("/ticket-types", s.catalogHandler.ListTicketTypes)
	api.GET("/attractions", s.catalogHandler.ListAttractions)
	api.GET("/attractions/:id", s.catalogHandler.GetAttraction)
	api.GET("/shows", s.catalogHandler.ListShows)
	api.GET("/shows/:id", s.catalogHandler.GetShow)
	api.GET("/food-courts", s.catalogHandler.ListFoodCourts)
	api.GET("/food-courts/:id", s.catalogHandler.GetFoodCourt)
	api.GET("/notices", s.catalogHandler.ListNotices)
	api.GET("/park-info", s.catalogHandler.ListParkInfo)
	api.GET("/park-info/:key", s.catalogHandler.GetParkInfo)

	// -------- purchases --------
	api.GET("/purchases/visit-dates", s.purchaseHandler.VisitDates)
	api.POST("/purchases", s.purchaseHandler.Purchase)
	api.GET("/purchases", s.purchaseHandler.ListPurchases)
	api.GET("/purchases/:id", s.purchaseHandler.GetPurchase)

	// -------- itinerary draft --------
	api.GET("/itinerary/selectable", s.itineraryHandler.Selectable)
	api.GET("/itinerary/draft", s.itineraryHandler.GetDraft)
	api.DELETE("/itinerary/draft", s.itineraryHandler.DiscardDraft)
	api.POST("/itinerary/draft/select", s.itineraryHandler.SelectItem)
	api.POST("/itinerary/draft/add", s.itineraryHandler.AddStaged)
	api.PATCH("/itinerary/draft/items/:index", s.itineraryHandler.UpdateTime)
	api.DELETE("/itinerary/draft/items/:index", s.itineraryHandler.RemoveItem)
	api.POST("/itinerary/draft/save", s.itineraryHandler.SaveDraft)

	// -------- saved itineraries --------
	api.GET("/itineraries", s.itineraryHandler.ListItineraries)
	api.GET("/itineraries/:id", s.itineraryHandler.GetItinerary)
	api.DELETE("/itineraries/:id", s.itineraryHandler.DeleteItinerary)

	// -------- engagement --------
	api.POST("/attractions/:id/check-in", s.engagementHandler.CheckIn)
	api.POST("/ratings", s.engagementHandler.Rate)
	api.GET("/ratings/:kind/:id", s.engagementHandler.RatingSummary)

	// -------- admin --------
	admin := api.Group("/admin", middleware.RequireRole(model.RoleAdministrator))
	admin.POST("/attractions", s.catalogHandler.CreateAttraction)
	admin.PUT("/attractions/:id", s.catalogHandler.UpdateAttraction)
	admin.POST("/attractions/:id/toggle", s.catalogHandler.ToggleAttraction)
	admin.POST("/shows", s.catalogHandler.CreateShow)
	admin.PUT("/shows/:id", s.catalogHandler.UpdateShow)
	admin.POST("/shows/:id/toggle", s.catalogHandler.ToggleShow)
}

// handleError turns handler errors into a JSON body with a short message.
// Database failures are logged; their detail never reaches the client.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status int
		msg    string
		he     *echo.HTTPError
	)
	if errors.As(err, &he) {
		status = he.Code
		msg = fmt.Sprint(he.Message)
	} else {
		status = apperr.HTTPStatus(err)
		msg = apperr.Message(err)
	}

	switch {
	case apperr.IsPersistence(err):
		s.log.WithError(err).Warn("request failed to persist", "uri", c.Request().RequestURI)
	case status >= http.StatusInternalServerError:
		s.log.WithError(err).Error("request failed", "uri", c.Request().RequestURI)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, dto.ErrorResponse{Error: msg})
	}
	if err != nil {
		s.log.WithError(err).Error("write error response")
	}
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
