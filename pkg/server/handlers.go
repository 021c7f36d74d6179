// Copyright 2024 Lptworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package server

import (
	"fmt"
	"net/http"

	humanize "github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"

	"github.com/lptworks/parport/pkg/parport"
)

// StatusResponse is the payload of GET /status.
type StatusResponse struct {
	BaseAddress string `json:"base_address"`
	PinCount    int    `json:"pin_count"`
	StartedAt   string `json:"started_at"`
	Uptime      string `json:"uptime"`
}

// PinValueResponse is the payload of pin read/write calls.
type PinValueResponse struct {
	Name  string `json:"name"`
	Value bool   `json:"value"`
}

// PinValueRequest is the body of PUT /pins/:name.
type PinValueRequest struct {
	Value bool `json:"value"`
}

// RegisterValueResponse is the payload of register read/write calls.
type RegisterValueResponse struct {
	Register string `json:"register"`
	Value    byte   `json:"value"`
}

// RegisterValueRequest is the body of PUT /registers/:name.
type RegisterValueRequest struct {
	Value byte `json:"value"`
}

func (s *Server) handleGetStatus(c echo.Context) error {
	startedAt := s.service.StartedAt()
	return c.JSON(http.StatusOK, StatusResponse{
		BaseAddress: fmt.Sprintf("0x%03x", s.service.BaseAddress()),
		PinCount:    len(s.service.PinNames()),
		StartedAt:   startedAt.Format("2006-01-02T15:04:05Z07:00"),
		Uptime:      humanize.Time(startedAt),
	})
}

func (s *Server) handleListPins(c echo.Context) error {
	return c.JSON(http.StatusOK, s.service.Pins())
}

func (s *Server) handleReadPin(c echo.Context) error {
	name := c.Param("name")
	value, err := s.service.ReadPin(c.Request().Context(), name)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, PinValueResponse{Name: name, Value: value})
}

func (s *Server) handleWritePin(c echo.Context) error {
	name := c.Param("name")
	var req PinValueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := s.service.WritePin(c.Request().Context(), name, req.Value); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, PinValueResponse{Name: name, Value: req.Value})
}

func (s *Server) handleReadRegister(c echo.Context) error {
	name := c.Param("name")
	value, err := s.service.ReadRegister(c.Request().Context(), name)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, RegisterValueResponse{Register: name, Value: value})
}

func (s *Server) handleWriteRegister(c echo.Context) error {
	name := c.Param("name")
	var req RegisterValueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := s.service.WriteRegister(c.Request().Context(), name, req.Value); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, RegisterValueResponse{Register: name, Value: req.Value})
}

// mapError translates service errors into HTTP errors.
func mapError(err error) error {
	switch {
	case parport.IsInvalidPin(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case parport.IsInvalidDirection(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
