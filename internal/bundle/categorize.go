package bundle

import "strings"

// Category labels. These match the default folder names seeded by the store.
const (
	CategoryProductivity  = "Productivity"
	CategoryDevelopment   = "Development"
	CategoryGraphics      = "Graphics & Design"
	CategoryEntertainment = "Entertainment"
	CategoryUtilities     = "Utilities"
	CategoryGames         = "Games"
	CategoryCommunication = "Communication"
	CategoryOther         = "Other"
)

// keywordRule maps a bundle-identifier substring to a category.
type keywordRule struct {
	keyword  string
	category string
}

// keywordRules is checked in order against the lower-cased bundle identifier;
// the first match wins. More specific keywords come before generic ones
// ("gamecontroller" would otherwise hit "game" rules, etc.).
var keywordRules = []keywordRule{
	{"xcode", CategoryDevelopment},
	{"intellij", CategoryDevelopment},
	{"pycharm", CategoryDevelopment},
	{"goland", CategoryDevelopment},
	{"webstorm", CategoryDevelopment},
	{"sublime", CategoryDevelopment},
	{"visualstudio", CategoryDevelopment},
	{"vscode", CategoryDevelopment},
	{"iterm", CategoryDevelopment},
	{"terminal", CategoryDevelopment},
	{"docker", CategoryDevelopment},
	{"postman", CategoryDevelopment},
	{"github", CategoryDevelopment},

	{"slack", CategoryCommunication},
	{"discord", CategoryCommunication},
	{"zoom", CategoryCommunication},
	{"teams", CategoryCommunication},
	{"telegram", CategoryCommunication},
	{"whatsapp", CategoryCommunication},
	{"skype", CategoryCommunication},
	{"mail", CategoryCommunication},
	{"messages", CategoryCommunication},

	{"photoshop", CategoryGraphics},
	{"illustrator", CategoryGraphics},
	{"affinity", CategoryGraphics},
	{"sketch", CategoryGraphics},
	{"figma", CategoryGraphics},
	{"pixelmator", CategoryGraphics},
	{"blender", CategoryGraphics},

	{"spotify", CategoryEntertainment},
	{"music", CategoryEntertainment},
	{"vlc", CategoryEntertainment},
	{"netflix", CategoryEntertainment},
	{"podcast", CategoryEntertainment},
	{"plex", CategoryEntertainment},

	{"steam", CategoryGames},
	{"epicgames", CategoryGames},
	{"minecraft", CategoryGames},
	{"battle.net", CategoryGames},

	{"office", CategoryProductivity},
	{"word", CategoryProductivity},
	{"excel", CategoryProductivity},
	{"powerpoint", CategoryProductivity},
	{"notion", CategoryProductivity},
	{"obsidian", CategoryProductivity},
	{"notes", CategoryProductivity},
	{"calendar", CategoryProductivity},
	{"reminders", CategoryProductivity},
	{"pages", CategoryProductivity},
	{"numbers", CategoryProductivity},
	{"keynote", CategoryProductivity},

	{"safari", CategoryUtilities},
	{"chrome", CategoryUtilities},
	{"firefox", CategoryUtilities},
	{"finder", CategoryUtilities},
	{"archive", CategoryUtilities},
	{"cleaner", CategoryUtilities},
	{"keychain", CategoryUtilities},
}

// Categorize guesses a category from descriptor content. It is a pure
// function: keyword rules over the lower-cased bundle identifier first, then
// a coarse pass over the declared LSApplicationCategoryType, then Other.
func Categorize(bundleID, lsCategory string) string {
	id := strings.ToLower(bundleID)
	for _, rule := range keywordRules {
		if strings.Contains(id, rule.keyword) {
			return rule.category
		}
	}

	ls := strings.ToLower(lsCategory)
	switch {
	case strings.Contains(ls, "game"):
		return CategoryGames
	case strings.Contains(ls, "productivity"):
		return CategoryProductivity
	case strings.Contains(ls, "graphics"):
		return CategoryGraphics
	case strings.Contains(ls, "utilit"):
		return CategoryUtilities
	}

	return CategoryOther
}
