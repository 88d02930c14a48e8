package web

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dgilberg1988/my-surf-spots/internal/marine"
	"github.com/dgilberg1988/my-surf-spots/internal/models"
	"github.com/dgilberg1988/my-surf-spots/internal/ranking"
)

var errPartialLocation = errors.New("lat and lon must be given together")

// spotsQuery is the request's stand-in for the browser's geolocation result
type spotsQuery struct {
	user *models.Coordinates
	mode ranking.SortMode
}

// spotsPage is the data behind the HTML template
type spotsPage struct {
	Cards       []ranking.Card
	HasLocation bool
	Location    models.Coordinates
	SortLabel   string
	FellBack    bool // Distance was asked for without a location
	Unavailable int
	ToggleURL   string
	ToggleLabel string
}

func (s *Server) handleIndex(c *gin.Context) {
	q, err := s.parseQuery(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	cards := s.rank(c, q)
	effective := ranking.Effective(q.mode, q.user)

	toggle := q.mode.Toggle()
	params := url.Values{"sort": {string(toggle)}}
	page := spotsPage{
		Cards:       cards,
		HasLocation: q.user != nil,
		SortLabel:   effective.Label(),
		FellBack:    effective != q.mode,
		Unavailable: countUnavailable(cards),
		ToggleLabel: "Sort by " + toggle.Label(),
	}
	if q.user != nil {
		page.Location = *q.user
		params.Set("lat", strconv.FormatFloat(q.user.Latitude, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(q.user.Longitude, 'f', -1, 64))
	}
	page.ToggleURL = "/?" + params.Encode()

	c.HTML(http.StatusOK, "index.html", page)
}

func (s *Server) handleSpots(c *gin.Context) {
	q, err := s.parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cards := s.rank(c, q)
	c.JSON(http.StatusOK, gin.H{
		"sort":  ranking.Effective(q.mode, q.user),
		"spots": cards,
	})
}

// rank runs one refresh for this request and orders the result
func (s *Server) rank(c *gin.Context, q spotsQuery) []ranking.Card {
	spots := s.catalog.Spots()
	heights := marine.RefreshAll(c.Request.Context(), s.fetcher, spots)

	if ranking.Effective(q.mode, q.user) != q.mode {
		s.logger.Info("distance sort requested without location; sorting by wave height")
	}
	return ranking.Rank(spots, heights, q.user, q.mode)
}

func (s *Server) parseQuery(c *gin.Context) (spotsQuery, error) {
	q := spotsQuery{mode: s.defaultSort}

	if raw := c.Query("sort"); raw != "" {
		mode, err := ranking.ParseSortMode(raw)
		if err != nil {
			return q, err
		}
		q.mode = mode
	}

	latRaw, lonRaw := c.Query("lat"), c.Query("lon")
	if latRaw == "" && lonRaw == "" {
		return q, nil
	}
	if latRaw == "" || lonRaw == "" {
		return q, errPartialLocation
	}

	lat, err := parseCoordinate("lat", latRaw, 90)
	if err != nil {
		return q, err
	}
	lon, err := parseCoordinate("lon", lonRaw, 180)
	if err != nil {
		return q, err
	}

	q.user = &models.Coordinates{Latitude: lat, Longitude: lon}
	return q, nil
}

func parseCoordinate(name, raw string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	if v < -limit || v > limit {
		return 0, fmt.Errorf("%s %v out of range", name, v)
	}
	return v, nil
}

func countUnavailable(cards []ranking.Card) int {
	n := 0
	for _, c := range cards {
		if c.Wave.Status == models.WaveUnavailable {
			n++
		}
	}
	return n
}
