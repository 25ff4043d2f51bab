package api

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/opensite-ai/page-speed-social-share/api/controllers"
	"github.com/opensite-ai/page-speed-social-share/api/middlewares"
	"github.com/opensite-ai/page-speed-social-share/api/models"
	"github.com/opensite-ai/page-speed-social-share/api/notifyhub"
	"github.com/opensite-ai/page-speed-social-share/engine"
	"github.com/opensite-ai/page-speed-social-share/fetch"
	"github.com/opensite-ai/page-speed-social-share/share"
	"github.com/opensite-ai/page-speed-social-share/tool"
	"github.com/opensite-ai/page-speed-social-share/types"
)

// Server hosts the share engine, the image proxy and the notify hub behind a
// local HTTP API.
type Server struct {
	port     int
	protocol string
	engine   *gin.Engine
	server   *http.Server
	mu       sync.RWMutex
}

// NewServer wires the pipeline, hub-backed sharer and engine from config and
// returns the server. The hub portal is owned by the server for its lifetime.
func NewServer(cfg *types.AppConfig) *Server {
	hub := share.AcquirePortal(share.PortalNotifyHub, func() any { return notifyhub.New() }).(*notifyhub.Hub)
	pipeline := fetch.NewPipeline(cfg)
	eng := engine.New(notifyhub.NewHubSharer(hub), pipeline)
	eng.SetAttachmentsDisabled(!cfg.AttachImages)

	models.SetNotifyHub(hub)
	models.SetPipeline(pipeline)
	models.SetShareEngine(eng)
	controllers.InitProxyLimiter(cfg.ProxyRateRPS)

	protocol := cfg.Protocol
	if protocol == "" {
		protocol = "http"
	}
	return &Server{port: cfg.Port, protocol: protocol}
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middlewares.AllowAllCORS())
	router.Use(gin.Recovery())

	// The proxy endpoint is reachable from the page origin, not only localhost:
	// the widget embeds it as its CORS-avoidance fetch path.
	v1 := router.Group("/api/share/v1")
	{
		v1.POST("/proxy-image", controllers.HandleProxyImage)
	}

	self := router.Group("/api/self/v1", middlewares.OnlyAllowLocal)
	{
		self.POST("/share", controllers.HandleShare)
		self.GET("/share-state", controllers.HandleShareState)
		self.GET("/affordances", controllers.HandleAffordances)
		self.GET("/create-qr-code", controllers.GenerateQRCode)
		self.GET("/proxy-health", controllers.HandleProxyHealth)
		self.GET("/status", controllers.HandleStatus)
		self.GET("/config", controllers.HandleConfigGet)
		self.PATCH("/config", controllers.HandleConfigPatch)
		if hub := models.GetNotifyHub(); hub != nil {
			self.GET("/notify-ws", notifyhub.HandleNotifyWS(hub))
		}
	}

	return router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	router := s.setupRoutes()

	s.mu.Lock()
	s.engine = router
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: router,
	}
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting share API server on %s://0.0.0.0:%d", s.protocol, s.port)

	if s.protocol == "https" {
		cfg := tool.GetCurrentConfig()
		certPEM, keyPEM, err := tool.GetOrCreateTLSCert(cfg)
		if err != nil {
			return fmt.Errorf("failed to get TLS certificate: %v", err)
		}
		// write-back so a freshly generated certificate survives restarts
		tool.PersistAppConfig(cfg)

		cert, err := tls.X509KeyPair(certPEM, keyPEM)
		if err != nil {
			return fmt.Errorf("failed to load TLS certificate: %v", err)
		}
		s.mu.Lock()
		s.server.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
		}
		s.mu.Unlock()
		return s.server.ListenAndServeTLS("", "")
	}

	return s.server.ListenAndServe()
}

// Close releases the server's reference on the hub portal.
func (s *Server) Close() {
	share.ReleasePortal(share.PortalNotifyHub, nil)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.server != nil {
		_ = s.server.Close()
	}
}
