package session

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes exposes the session controller to the UI widgets. Every
// mutating call answers with the refreshed session snapshot; validation
// problems ride inside the snapshot's error field per the session contract,
// while malformed requests and unknown sessions are HTTP errors.
func RegisterRoutes(r fiber.Router, m *Manager) {
	r.Post("/", func(c *fiber.Ctx) error {
		var body struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		var seed *LatLng
		if body.Lat != nil && body.Lng != nil {
			seed = &LatLng{Lat: *body.Lat, Lng: *body.Lng}
		}
		s := m.Create(seed)
		return c.Status(fiber.StatusCreated).JSON(s.Snapshot())
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		return c.JSON(s.Snapshot())
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if _, err := lookup(m, c); err != nil {
			return err
		}
		m.Delete(c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/:id/layers", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		return c.JSON(s.Layers())
	})

	r.Post("/:id/location", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		var body struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(s.SetUserLocation(body.Lat, body.Lng))
	})

	r.Post("/:id/click", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		var body struct {
			Lat        float64 `json:"lat"`
			Lng        float64 `json:"lng"`
			ToleranceM float64 `json:"tolerance_m"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(s.Click(body.Lat, body.Lng, body.ToleranceM))
	})

	r.Post("/:id/draw", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		return c.JSON(s.StartDrawing())
	})

	r.Post("/:id/draw/undo", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		return c.JSON(s.UndoWaypoint())
	})

	r.Post("/:id/draw/cancel", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		return c.JSON(s.CancelDrawing())
	})

	r.Post("/:id/draw/finalize", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		return c.JSON(s.FinalizeDrawing(c.Context()))
	})

	r.Post("/:id/generate", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		var settings GenerateSettings
		if err := c.BodyParser(&settings); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(s.Generate(c.Context(), settings))
	})

	r.Post("/:id/explore", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		return c.JSON(s.StartExploring())
	})

	r.Post("/:id/explore/query", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		var body struct {
			RadiusKm float64 `json:"radius_km"`
		}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}
		return c.JSON(s.ExploreQuery(c.Context(), body.RadiusKm))
	})

	r.Post("/:id/explore/exit", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		return c.JSON(s.ExitExploring())
	})

	r.Post("/:id/explore/select", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		var body struct {
			OSMID int64 `json:"osm_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(s.SelectExplored(body.OSMID))
	})

	r.Post("/:id/explore/deselect", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		return c.JSON(s.ClearSelection())
	})

	r.Post("/:id/explore/types/toggle", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		var body struct {
			RouteType string `json:"route_type"`
		}
		if err := c.BodyParser(&body); err != nil || body.RouteType == "" {
			return fiber.NewError(fiber.StatusBadRequest, "route_type required")
		}
		return c.JSON(s.ToggleRouteType(body.RouteType))
	})

	r.Post("/:id/route/clear", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		return c.JSON(s.ClearRoute())
	})

	r.Post("/:id/route/save", func(c *fiber.Ctx) error {
		s, err := lookup(m, c)
		if err != nil {
			return err
		}
		var body struct {
			Name string `json:"name"`
		}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		summary, snap := s.SaveRoute(c.Context(), body.Name)
		if summary.ID == "" {
			return c.JSON(fiber.Map{"session": snap})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"summary": summary, "session": snap})
	})
}

// RegisterSavedRouteRoutes proxies the saved-route library through the
// gateway, with the list cached best-effort.
func RegisterSavedRouteRoutes(r fiber.Router, m *Manager) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(m.SavedRoutes(c.Context()))
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		detail, err := m.SavedRoute(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "route not found")
		}
		return c.JSON(detail)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := m.DeleteSavedRoute(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func lookup(m *Manager, c *fiber.Ctx) (*Session, error) {
	s, ok := m.Get(c.Params("id"))
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	return s, nil
}
