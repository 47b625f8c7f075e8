package model

// Document is the root aggregate: the entire persistent state of the
// application as one JSON object. It is the unit of atomicity — the store
// always loads and saves the whole thing, never a slice of it.
type Document struct {
	Folders  []Folder           `json:"folders"`
	Screens  []Screen           `json:"screens"`
	Assets   []Asset            `json:"assets"`
	Sessions map[string]Session `json:"sessions"`
}

// NewDocument returns the empty bootstrap document: the default folder, no
// screens, no assets, no sessions. This is what the store persists the first
// time it finds no backing file.
func NewDocument() *Document {
	return &Document{
		Folders:  []Folder{DefaultFolder()},
		Screens:  []Screen{},
		Assets:   []Asset{},
		Sessions: map[string]Session{},
	}
}

// EnsureShape repairs a document decoded from an old or damaged file:
// nil slices become empty, the sessions map is allocated, and the sentinel
// "default" folder is re-added if it went missing. Safe to call repeatedly.
func (d *Document) EnsureShape() {
	if d.Screens == nil {
		d.Screens = []Screen{}
	}
	if d.Assets == nil {
		d.Assets = []Asset{}
	}
	if d.Sessions == nil {
		d.Sessions = map[string]Session{}
	}
	for _, f := range d.Folders {
		if f.ID == DefaultFolderID {
			return
		}
	}
	d.Folders = append([]Folder{DefaultFolder()}, d.Folders...)
}

// FolderByID returns the folder with the given id, or false if absent.
func (d *Document) FolderByID(id string) (Folder, bool) {
	for _, f := range d.Folders {
		if f.ID == id {
			return f, true
		}
	}
	return Folder{}, false
}

// ScreenBySlug returns the index of the screen with the given slug, or -1.
func (d *Document) ScreenBySlug(slug string) int {
	for i, s := range d.Screens {
		if s.Slug == slug {
			return i
		}
	}
	return -1
}

// ScreenByID returns the index of the screen with the given id, or -1.
func (d *Document) ScreenByID(id string) int {
	for i, s := range d.Screens {
		if s.ID == id {
			return i
		}
	}
	return -1
}
