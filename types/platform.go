package types

// Platform is the store or launcher a game is owned on
type Platform string

const (
	PlatformSteam     Platform = "Steam"
	PlatformEpic      Platform = "Epic"
	PlatformGOG       Platform = "GOG"
	PlatformBattleNet Platform = "Battle.net"
	PlatformUbisoft   Platform = "Ubisoft"
	PlatformEA        Platform = "EA"
	PlatformCustom    Platform = "Custom"
)

// Platforms returns the fixed, ordered platform set.
func Platforms() []Platform {
	return []Platform{
		PlatformSteam,
		PlatformEpic,
		PlatformGOG,
		PlatformBattleNet,
		PlatformUbisoft,
		PlatformEA,
		PlatformCustom,
	}
}

// Valid reports whether p is a member of the platform set.
func (p Platform) Valid() bool {
	for _, known := range Platforms() {
		if p == known {
			return true
		}
	}
	return false
}
