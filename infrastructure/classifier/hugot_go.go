//go:build !ORT

package classifier

import "github.com/knights-analytics/hugot"

func newHugotSession() (*hugot.Session, error) {
	return hugot.NewGoSession()
}
