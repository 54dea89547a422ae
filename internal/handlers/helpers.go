package handlers

import (
	"slices"
	"strconv"

	"github.com/vroumauto/webapp/internal/session"
	"github.com/vroumauto/webapp/internal/web"
)

func sessionFrom(c web.Context) *session.Session {
	return session.FromContext(c)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func contains(list []string, v string) bool {
	return slices.Contains(list, v)
}
