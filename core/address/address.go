// Package address represents the five-part page coordinate used by the archive.
//
// Coordinates are forwarded as-is: the archive is the source of truth for
// what is valid, so nothing here bounds-checks or validates the alphabet.
package address

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Empirical page range of a volume. Used as walk defaults only.
const (
	FirstPage = 1
	LastPage  = 410
)

const defaultPage = "1"

// Coordinate identifies one page: hex, wall, shelf, volume and page.
// Every field is an opaque text token.
type Coordinate struct {
	Hex    string `json:"hex"`
	Wall   string `json:"wall"`
	Shelf  string `json:"shelf"`
	Volume string `json:"volume"`
	Page   string `json:"page"`
}

// New builds a Coordinate. The page defaults to 1 when omitted or empty.
func New(hex, wall, shelf, volume string, page ...string) Coordinate {
	p := defaultPage
	if len(page) > 0 && page[0] != "" {
		p = page[0]
	}
	return Coordinate{Hex: hex, Wall: wall, Shelf: shelf, Volume: volume, Page: p}
}

// FromInts builds a Coordinate from numeric parts. A page <= 0 means page 1.
func FromInts(hex string, wall, shelf, volume, page int) Coordinate {
	p := defaultPage
	if page > 0 {
		p = strconv.Itoa(page)
	}
	return New(hex, strconv.Itoa(wall), strconv.Itoa(shelf), strconv.Itoa(volume), p)
}

// Form returns the page-fetch form fields.
func (c Coordinate) Form() url.Values {
	page := c.Page
	if page == "" {
		page = defaultPage
	}
	form := url.Values{}
	form.Set("hex", c.Hex)
	form.Set("wall", c.Wall)
	form.Set("shelf", c.Shelf)
	form.Set("volume", c.Volume)
	form.Set("page", page)
	return form
}

// PageNumber parses the page token.
func (c Coordinate) PageNumber() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(c.Page))
	if err != nil {
		return 0, fmt.Errorf("page %q is not a number: %w", c.Page, err)
	}
	return n, nil
}

// WithPage returns a copy addressing another page of the same volume.
func (c Coordinate) WithPage(page int) Coordinate {
	c.Page = strconv.Itoa(page)
	return c
}

// Book returns the coordinate with the page cleared, identifying the volume.
func (c Coordinate) Book() Coordinate {
	c.Page = ""
	return c
}

// Location renders the archive's book link form, e.g. "a-w3-s2-v29:1".
// A coordinate without a page (see Book) renders as the volume alone,
// e.g. "a-w3-s2-v29".
func (c Coordinate) Location() string {
	volume := fmt.Sprintf("%s-w%s-s%s-v%s", c.Hex, c.Wall, c.Shelf, c.Volume)
	if c.Page == "" {
		return volume
	}
	return volume + ":" + c.Page
}

func (c Coordinate) String() string {
	return c.Location()
}

// locationRegex matches "{hex}-w{wall}-s{shelf}-v{volume}[:{page}]",
// optionally prefixed by "book.cgi?".
var locationRegex = regexp.MustCompile(`^(.+)-w([^-:]+)-s([^-:]+)-v([^-:]+)(?::([^:]*))?$`)

// ParseLocation reverses Location. A missing page defaults to 1.
func ParseLocation(s string) (Coordinate, error) {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "?"); i >= 0 {
		s = s[i+1:]
	}
	m := locationRegex.FindStringSubmatch(s)
	if m == nil {
		return Coordinate{}, fmt.Errorf("invalid location %q: want hex-wN-sN-vN[:page]", s)
	}
	return New(m[1], m[2], m[3], m[4], m[5]), nil
}

// Slug returns a filesystem-safe name, e.g. "a_w3_s2_v29_p1".
func (c Coordinate) Slug() string {
	parts := []string{sanitize(c.Hex), "w" + sanitize(c.Wall), "s" + sanitize(c.Shelf), "v" + sanitize(c.Volume)}
	if c.Page != "" {
		parts = append(parts, "p"+sanitize(c.Page))
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
