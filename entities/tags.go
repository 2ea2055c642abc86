package entities

import "github.com/lixenwraith/band-battle/engine"

// Collision tags
const (
	TagRedBand engine.Tag = iota + 1
	TagBlueBand
	TagRedBullet
	TagBlueBullet
)

var tagNames = map[engine.Tag]string{
	engine.TagNone: "none",
	TagRedBand:     "redBand",
	TagBlueBand:    "blueBand",
	TagRedBullet:   "redBullet",
	TagBlueBullet:  "blueBullet",
}

// TagName returns the display name of a tag
func TagName(t engine.Tag) string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "unknown"
}

// Team identifies which band an entity belongs to
type Team uint8

const (
	TeamNone Team = iota
	TeamRed
	TeamBlue
)

func (t Team) String() string {
	switch t {
	case TeamRed:
		return "red"
	case TeamBlue:
		return "blue"
	default:
		return "none"
	}
}

// BandTag returns the tag carried by the team's band
func (t Team) BandTag() engine.Tag {
	switch t {
	case TeamRed:
		return TagRedBand
	case TeamBlue:
		return TagBlueBand
	default:
		return engine.TagNone
	}
}

// BulletTag returns the tag carried by bubbles the team's band fires
func (t Team) BulletTag() engine.Tag {
	switch t {
	case TeamRed:
		return TagRedBullet
	case TeamBlue:
		return TagBlueBullet
	default:
		return engine.TagNone
	}
}
