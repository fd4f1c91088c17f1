// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Server is a running http server.
type Server struct {
	srv   *http.Server
	url   string
	group errgroup.Group
}

// URL returns the base URL the server listens on.
func (s *Server) URL() string { return s.url }

// Close stops the server and waits for the serving goroutine to exit.
func (s *Server) Close() error {
	s.srv.Close()
	return s.group.Wait()
}

func start(name, addr, path string, handler http.Handler) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %v addr [%v]", name, addr)
	}
	s := &Server{
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: time.Second,
			ReadTimeout:       5 * time.Second,
		},
		url: "http://" + listener.Addr().String() + path,
	}
	s.group.Go(func() error {
		if err := s.srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "serve %v", name)
		}
		return nil
	})
	return s, nil
}
