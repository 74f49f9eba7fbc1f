package server

import (
	"fmt"

	"github.com/safenest/safenest/pkg/config"
	handlers "github.com/safenest/safenest/pkg/handlers/http"
	"github.com/safenest/safenest/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	ApiServerDI struct {
		HandlerTransport handlers.HandlerTransport
		Config           *config.Config
		Logger           *logrus.Logger
	}
	ApiServer struct {
		*BaseServer
		handlerTransport handlers.HandlerTransport
	}
)

func NewApiServer(di ApiServerDI) *ApiServer {
	return &ApiServer{
		BaseServer:       NewBaseServer(di.Config, di.Logger),
		handlerTransport: di.HandlerTransport,
	}
}

func (s *ApiServer) Run() error {
	s.WithRouters(router.NewApiRouter(s.handlerTransport))
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting api server")
	return s.Router.Listen(addr)
}

func (s *ApiServer) Shutdown() error {
	return s.Router.Shutdown()
}
