package constants

import "time"

// Game Loop Timing Constants
const (
	// GameUpdateInterval is the fixed scheduler interval for one frame
	GameUpdateInterval = 30 * time.Millisecond

	// MinUpdateInterval is the lowest tick interval accepted from configuration
	MinUpdateInterval = 5 * time.Millisecond
)

// Band Tuning
const (
	// BandBubbleRate is bubbles emitted per second while playing
	BandBubbleRate = 40.0

	// BandAngularSpeed is the default rotation in radians per second
	BandAngularSpeed = 1.0

	// BandBubbleSpeed is bubble travel speed in field units per second
	BandBubbleSpeed = 100.0

	// BandMaxHealth caps healing
	BandMaxHealth = 1.0

	// BandDefaultDamage is used when Damage/Heal receive a zero amount
	BandDefaultDamage = 1.0

	// BandWidth and BandHeight size the band rectangle in field units
	BandWidth  = 96.0
	BandHeight = 64.0
)

// Bubble Tuning
const (
	// BubbleLifetime is the starting countdown in seconds
	BubbleLifetime = 15.0

	// BubbleBouncePenalty is subtracted from the countdown on every wall bounce
	BubbleBouncePenalty = 2.0

	// BubbleOpacityRange maps countdown/BubbleOpacityRange onto the opacity scale
	BubbleOpacityRange = 10.0
	BubbleOpacityMin   = 0.3
	BubbleOpacityMax   = 1.0

	BubbleWidth  = 8.0
	BubbleHeight = 8.0
)

// Poof Tuning
const (
	PoofSpeedMin = 50.0
	PoofSpeedMax = 200.0

	// PoofMinSize is the lower bound for a poof edge length
	PoofMinSize = 2
)

// Burst sizes and damage used by the match handlers
const (
	BurstKnockout  = 100
	BurstBandHit   = 30
	BurstBubblePop = 10
	BandHitDamage  = 0.11
)
