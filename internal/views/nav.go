package views

// NavLink is an entry of the navigation bar.
type NavLink struct {
	Path   string
	Label  string
	Active bool
}

var navEntries = []NavLink{
	{Path: "/courses", Label: "Courses"},
	{Path: "/students", Label: "Students"},
	{Path: "/register", Label: "Register"},
}

// NavLinks returns the navigation bar for currentPath. A link is active only
// when its path equals currentPath.
func NavLinks(currentPath string) []NavLink {
	links := make([]NavLink, len(navEntries))
	for i, l := range navEntries {
		l.Active = l.Path == currentPath
		links[i] = l
	}
	return links
}
