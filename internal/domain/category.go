package domain

// Category identifies one of the standard XDG user directories
type Category int

const (
	CategoryDesktop Category = iota
	CategoryDocuments
	CategoryDownloads
	CategoryMusic
	CategoryPictures
	CategoryPublic
	CategoryTemplates
	CategoryVideos
)

// Categories lists all known categories in deterministic order
var Categories = []Category{
	CategoryDesktop,
	CategoryDocuments,
	CategoryDownloads,
	CategoryMusic,
	CategoryPictures,
	CategoryPublic,
	CategoryTemplates,
	CategoryVideos,
}

// DirName returns the directory name as it appears on disk
func (c Category) DirName() string {
	switch c {
	case CategoryDesktop:
		return "Desktop"
	case CategoryDocuments:
		return "Documents"
	case CategoryDownloads:
		return "Downloads"
	case CategoryMusic:
		return "Music"
	case CategoryPictures:
		return "Pictures"
	case CategoryPublic:
		return "Public"
	case CategoryTemplates:
		return "Templates"
	case CategoryVideos:
		return "Videos"
	default:
		return "unknown"
	}
}

// String implements fmt.Stringer
func (c Category) String() string {
	return c.DirName()
}

// ParseCategory matches a directory name against the known XDG names.
// The match is case-sensitive; a lowercase "documents" folder is not
// treated as an XDG directory.
func ParseCategory(dirname string) (Category, bool) {
	for _, c := range Categories {
		if c.DirName() == dirname {
			return c, true
		}
	}
	return 0, false
}
