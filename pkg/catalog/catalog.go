package catalog

type Category string

const (
	CategoryRegular    Category = "regular"
	CategoryEvent      Category = "event"
	CategorySpecial    Category = "special"
	CategoryAdditional Category = "additional"
)

// Categories lists every category in menu order (1-4).
var Categories = []Category{CategoryRegular, CategoryEvent, CategorySpecial, CategoryAdditional}

var CategoryNameMap = map[Category]string{
	CategoryRegular:    "Regular Companionship",
	CategoryEvent:      "Event Companionship",
	CategorySpecial:    "Specialized Services",
	CategoryAdditional: "Additional Services",
}

func (c Category) String() string {
	return string(c)
}

func (c Category) DisplayName() string {
	return CategoryNameMap[c]
}

func (c Category) Valid() bool {
	_, ok := packages[c]
	return ok
}

type PackageKey string

const (
	Package1Hr      PackageKey = "1hr"
	Package3Hr      PackageKey = "3hr"
	Package6Hr      PackageKey = "6hr"
	PackageBike     PackageKey = "bike"
	PackageMovie    PackageKey = "movie"
	PackageTravel   PackageKey = "travel"
	PackageWeekend  PackageKey = "weekend"
	PackageText     PackageKey = "text"
	PackageText8    PackageKey = "text8"
	PackageCall     PackageKey = "call"
	PackageLateCall PackageKey = "latecall"
)

type Package struct {
	Key         PackageKey `json:"key"`
	Name        string     `json:"name"`
	Price       string     `json:"price"`
	Description string     `json:"description"`
}

type BusinessInfo struct {
	Name    string
	Phone   string
	Website string
	Email   string
}

var Business = BusinessInfo{
	Name:    "Rent a Romiio",
	Phone:   "8368235765",
	Website: "https://rentaromiio.com",
	Email:   "rentaromiio@gmail.com",
}

var packages = map[Category][]Package{
	CategoryRegular: {
		{Key: Package1Hr, Name: "1 Hour", Price: "₹1,499", Description: "Perfect for coffee, short meet, or casual conversation"},
		{Key: Package3Hr, Name: "3 Hours", Price: "₹3,999", Description: "A bit longer — events, lunch, or fun hangout"},
		{Key: Package6Hr, Name: "6 Hours", Price: "₹7,999", Description: "Fully immersive experience — event + day support"},
	},
	CategoryEvent: {
		{Key: Package1Hr, Name: "1 Hour", Price: "₹1,899", Description: "Professional event presence"},
		{Key: Package3Hr, Name: "3 Hours", Price: "₹4,999", Description: "Perfect for weddings or parties"},
		{Key: Package6Hr, Name: "6 Hours", Price: "₹8,999", Description: "Full-day event support & partner experience"},
	},
	CategorySpecial: {
		{Key: PackageBike, Name: "Bike Ride", Price: "₹1,999/hr", Description: "Adventure rides with your companion"},
		{Key: PackageMovie, Name: "Movie Partner", Price: "₹2,999/session", Description: "Cinema experience together"},
		{Key: PackageTravel, Name: "Travel Buddy", Price: "₹9,999/day", Description: "Full day travel companion"},
		{Key: PackageWeekend, Name: "Weekend Romiio", Price: "Price on request", Description: "Weekend companionship session"},
	},
	CategoryAdditional: {
		{Key: PackageText, Name: "Texting", Price: "₹99/hr", Description: "Virtual text companionship"},
		{Key: PackageText8, Name: "Texting (8 hrs)", Price: "₹699", Description: "Extended text support"},
		{Key: PackageCall, Name: "Calls", Price: "₹299/hr", Description: "Voice call companionship"},
		{Key: PackageLateCall, Name: "Late Night Calls", Price: "₹499/hr", Description: "Night time voice support"},
	},
}

// Lookup returns the package stored under key for the category.
func Lookup(category Category, key PackageKey) (Package, bool) {
	for _, p := range packages[category] {
		if p.Key == key {
			return p, true
		}
	}
	return Package{}, false
}

// Packages returns a copy of the packages of a category in display order.
func Packages(category Category) []Package {
	list := packages[category]
	out := make([]Package, len(list))
	copy(out, list)
	return out
}

// IsSpecialized reports whether bookings in the category use the
// specialized two-step collection flows instead of date/time/city.
func IsSpecialized(category Category) bool {
	return category == CategorySpecial
}

// SkipsCity reports whether the booking flow of the category ends after the time step.
func SkipsCity(category Category) bool {
	return category == CategoryAdditional
}
