package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	alertv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/alert/v1"
	candlev1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/candle/v1"
	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	orderbookv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/orderbook/v1"
	"github.com/Goutam245/Crypto-DashBoard/internal/usecase/core"
	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
	"github.com/Goutam245/Crypto-DashBoard/pkg/logger"
)

//go:generate mockgen -source=server.go -destination=mock/server_mock.go -package=api_mock

// MarketCore is the surface the API needs from the core.
type MarketCore interface {
	Instruments() []marketv1.Instrument
	GetOrderBook(instrumentID string) (*orderbookv1.State, error)
	GetCandles(instrumentID, intervalName string, limit int) ([]candlev1.Candle, error)
	GetRecentAlerts(instrumentID string, limit int) []alertv1.Alert
	GetStats(instrumentID string) (marketv1.Stats, error)
	Subscribe(instrumentID string, timeframes ...string) (*core.Subscription, error)
}

// Server handles REST API and websocket connections.
type Server struct {
	core   MarketCore
	router *mux.Router
	hub    *Hub
	logger logger.Interface

	httpServer *http.Server
}

// NewServer creates a new API server.
func NewServer(marketCore MarketCore, log logger.Interface) *Server {
	s := &Server{
		core:   marketCore,
		router: mux.NewRouter(),
		hub:    NewHub(log),
		logger: log,
	}

	s.setupRoutes()
	return s
}

// Handler exposes the routed handler without the listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/instruments", s.handleGetInstruments).Methods(http.MethodGet)
	api.HandleFunc("/instruments/{id}/orderbook", s.handleGetOrderBook).Methods(http.MethodGet)
	api.HandleFunc("/instruments/{id}/candles", s.handleGetCandles).Methods(http.MethodGet)
	api.HandleFunc("/instruments/{id}/alerts", s.handleGetAlerts).Methods(http.MethodGet)
	api.HandleFunc("/instruments/{id}/stats", s.handleGetStats).Methods(http.MethodGet)
	api.HandleFunc("/alerts", s.handleGetAllAlerts).Methods(http.MethodGet)

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
}

// Start runs the listener and the websocket bridge until the context is
// cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	go s.hub.Run(ctx)
	s.bridgeCoreEvents(ctx)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           c.Handler(s.router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.InfoContext(ctx, "api server starting", logger.Field{Key: "addr", Value: addr})

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.TracerFromError(err)
	}
	return nil
}

// bridgeCoreEvents opens one core subscription per instrument and
// re-broadcasts its events on the matching websocket channels.
func (s *Server) bridgeCoreEvents(ctx context.Context) {
	for _, instrument := range s.core.Instruments() {
		sub, err := s.core.Subscribe(instrument.ID)
		if err != nil {
			s.logger.Error(err)
			continue
		}
		go s.pumpSubscription(ctx, sub)
	}
}

func (s *Server) pumpSubscription(ctx context.Context, sub *core.Subscription) {
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			s.broadcastEvent(event)
		}
	}
}

func (s *Server) broadcastEvent(event core.Event) {
	switch event.Type {
	case core.EventOrderBookUpdated:
		if event.Book == nil {
			return
		}
		s.hub.BroadcastToChannel("orderbook:"+event.InstrumentID, WSMessage{
			Channel: "orderbook:" + event.InstrumentID,
			Type:    string(event.Type),
			Data:    toOrderBookSnapshot(event.Book),
		})
	case core.EventCandleUpdated, core.EventCandleClosed:
		if event.Candle == nil {
			return
		}
		channel := fmt.Sprintf("candles:%s:%s", event.InstrumentID, event.Candle.Interval)
		s.hub.BroadcastToChannel(channel, WSMessage{
			Channel: channel,
			Type:    string(event.Type),
			Data:    toCandleInfo(*event.Candle),
		})
	case core.EventAlertFired:
		if event.Alert == nil {
			return
		}
		s.hub.BroadcastToChannel("alerts:"+event.InstrumentID, WSMessage{
			Channel: "alerts:" + event.InstrumentID,
			Type:    string(event.Type),
			Data:    toAlertInfo(*event.Alert),
		})
	}
}

func (s *Server) handleGetInstruments(w http.ResponseWriter, r *http.Request) {
	instruments := s.core.Instruments()

	response := make([]InstrumentInfo, len(instruments))
	for i, instrument := range instruments {
		response[i] = toInstrumentInfo(instrument)
	}

	respondJSON(w, response)
}

func (s *Server) handleGetOrderBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	state, err := s.core.GetOrderBook(id)
	if err != nil {
		respondCoreError(w, err)
		return
	}

	respondJSON(w, toOrderBookSnapshot(state))
}

func (s *Server) handleGetCandles(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	intervalName := r.URL.Query().Get("interval")
	if intervalName == "" {
		intervalName = "1m"
	}
	limit := parseLimit(r, 100)

	candles, err := s.core.GetCandles(id, intervalName, limit)
	if err != nil {
		respondCoreError(w, err)
		return
	}

	respondJSON(w, toCandleInfos(candles))
}

func (s *Server) handleGetAlerts(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	limit := parseLimit(r, 50)

	respondJSON(w, toAlertInfos(s.core.GetRecentAlerts(id, limit)))
}

func (s *Server) handleGetAllAlerts(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 50)

	respondJSON(w, toAlertInfos(s.core.GetRecentAlerts("", limit)))
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	stats, err := s.core.GetStats(id)
	if err != nil {
		respondCoreError(w, err)
		return
	}

	respondJSON(w, toStatsInfo(stats))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]any{"status": "ok", "time": nowMillis()})
}

func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return fallback
	}
	return limit
}

func respondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

func respondCoreError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.ErrorCodeEquals(err, errors.ErrUnknownInstrument):
		status = http.StatusNotFound
	case errors.ErrorCodeEquals(err, errors.ErrConfiguration), errors.ErrorCodeEquals(err, errors.ErrInvalidTick):
		status = http.StatusBadRequest
	}
	respondError(w, status, err.Error())
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: http.StatusText(status), Message: message})
}
