package key

import "runtime"

// Platform identifies the host platform family for "$mod" resolution.
type Platform uint8

const (
	// PlatformOther is every non-Apple platform; "$mod" means Ctrl.
	PlatformOther Platform = iota

	// PlatformApple is macOS and iOS; "$mod" means Meta (Cmd).
	PlatformApple
)

// String returns the platform name.
func (p Platform) String() string {
	if p == PlatformApple {
		return "apple"
	}
	return "other"
}

// Primary returns the modifier that "$mod" resolves to on p.
func (p Platform) Primary() Modifier {
	if p == PlatformApple {
		return ModMeta
	}
	return ModCtrl
}

// PlatformFromGOOS maps a GOOS value to a Platform.
func PlatformFromGOOS(goos string) Platform {
	switch goos {
	case "darwin", "ios":
		return PlatformApple
	default:
		return PlatformOther
	}
}

// ParsePlatform maps a configuration value ("apple", "mac", "darwin",
// "other", "linux", "windows", "auto") to a Platform. Unknown or empty
// values select the current platform.
func ParsePlatform(s string) Platform {
	switch s {
	case "apple", "mac", "macos", "darwin", "ios":
		return PlatformApple
	case "other", "linux", "windows", "pc":
		return PlatformOther
	default:
		return CurrentPlatform()
	}
}

var currentPlatform = PlatformFromGOOS(runtime.GOOS)

// CurrentPlatform returns the platform the process is running on.
func CurrentPlatform() Platform {
	return currentPlatform
}
