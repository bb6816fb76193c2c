package navigation

import "git.home.luguber.info/inful/docsite/internal/content"

// Crumb is one breadcrumb step. The last crumb has no Href.
type Crumb struct {
	Title string `json:"title"`
	Href  string `json:"href,omitempty"`
}

// Breadcrumbs derives the trail for pathname from its segments alone:
// Home, then one crumb per segment titled from the segment name.
func Breadcrumbs(pathname string) []Crumb {
	segments := splitPath(pathname)
	crumbs := make([]Crumb, 0, len(segments)+1)
	crumbs = append(crumbs, Crumb{Title: "Home", Href: "/"})

	href := ""
	for i, seg := range segments {
		href += "/" + seg
		c := Crumb{Title: content.TitleFromName(seg)}
		if i < len(segments)-1 {
			c.Href = href
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}
