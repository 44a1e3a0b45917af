package conversationService

import (
	"RomiioBot/internal/entity"
	"RomiioBot/pkg/catalog"
	"fmt"
	"strings"
)

const (
	textAskDate          = "💌 Great choice! Let's get a few quick details to book your Romiio 💖\n\n📅 Please enter your preferred booking date (DD-MM-YYYY or DD/MM/YYYY):"
	textInvalidDate      = "❌ Invalid date! Please enter a valid future date in DD-MM-YYYY format."
	textAskTime          = "⏰ Please enter your preferred time slot (e.g., 2 PM - 5 PM):"
	textInvalidCity      = "❌ Please type exactly one city from the list:\nDelhi, Noida, Greater Noida, Gurugram, Ghaziabad"
	textPaymentQR        = "📩 Great! We’ve captured your booking details.\nNow, please complete your payment to confirm your Romiio.\n👇 Scan the QR code below to proceed."
	textVerifyingPayment = "✅ We are verifying your payment.\nPlease wait while we finalize your booking details... 💫"
	textPaymentConfirmed = "✅ Payment received. Your booking is confirmed. Our team will share details shortly."
	textInvalidOption    = "Please select a valid option for this category or type 'menu'."
	textMissingInfo      = "Please provide the requested information."

	textAskBikeLocation = "🏍️ Great choice! 📍 Please share your pickup point location for the bike ride."
	textBikeLocation    = "📍 Please provide a pickup point location."
	textAskBikeDate     = "📅 Please share your preferred date for the bike ride (any format is fine)."
	textAskMovieDate    = "🎬 Great choice! 📅 Please share your preferred date for the movie."
	textAskMovieDetails = "🎬 Please share cinema hall location and preferred show timing."
	textAskTravelStart  = "✈️ Great choice! 📅 Please share your travel start date."
	textAskTravelEnd    = "📅 Great! Now share your return/end date."
	textAskWeekendDate  = "💕 Great choice! 📅 Please share your preferred weekend date."
	textAskWeekendTime  = "⏰ Please share your preferred timings for the weekend session."
)

type packageLayout struct {
	header       string
	icons        map[catalog.PackageKey]string
	descriptions bool
	note         string
	choices      string
}

var packageLayouts = map[catalog.Category]packageLayout{
	catalog.CategoryRegular: {
		header:       "Choose your duration, beautiful 💕",
		icons:        map[catalog.PackageKey]string{catalog.Package1Hr: "🕐", catalog.Package3Hr: "🕒", catalog.Package6Hr: "🌅"},
		descriptions: true,
		note:         "Companion service is available as an add-on. Pricing may fluctuate and will be higher on weekends to match demand.",
		choices:      "1hr / 3hr / 6hr",
	},
	catalog.CategoryEvent: {
		header:       "Choose your event duration 🎭",
		icons:        map[catalog.PackageKey]string{catalog.Package1Hr: "⏰", catalog.Package3Hr: "🕒", catalog.Package6Hr: "🌅"},
		descriptions: true,
		choices:      "1hr / 3hr / 6hr",
	},
	catalog.CategorySpecial: {
		header: "Pick your vibe ✨",
		icons: map[catalog.PackageKey]string{
			catalog.PackageBike: "🏍️", catalog.PackageMovie: "🎬", catalog.PackageTravel: "✈️", catalog.PackageWeekend: "💕",
		},
		choices: "bike / movie / travel / weekend",
	},
	catalog.CategoryAdditional: {
		header: "Need a virtual connection? 💫",
		icons: map[catalog.PackageKey]string{
			catalog.PackageText: "💬", catalog.PackageText8: "📱", catalog.PackageCall: "📞", catalog.PackageLateCall: "🌙",
		},
		choices: "text / text8 / call / latecall",
	},
}

// Renderer builds every customer facing text block.
type Renderer struct {
	business catalog.BusinessInfo
}

func NewRenderer(business catalog.BusinessInfo) *Renderer {
	return &Renderer{business: business}
}

func (r *Renderer) MainMenu() string {
	return `👋 Welcome to Rent A Romiio!
Because sometimes, all you need is good company and a better mood 💖

Choose your vibe and let the moment begin 👇
1️⃣ Regular Companionship
2️⃣ Event Companionship
3️⃣ Specialized Services
4️⃣ Additional Services
5️⃣ About Us
6️⃣ Contact Info
7️⃣ Book Now

⚠️ Note: You must be 18+ to use our services.`
}

func (r *Renderer) About() string {
	return `🤝 *ABOUT RENT A ROMIIO* 🤝

*Your Perfect Companion for Every Occasion*

✨ *Why Choose Us?*
• Friendly Companionship 👥
• Event Partner 🎭
• Emotional Support 💭
• Verified Service ✅

🛡️ *Trust & Safety*
• Complete Privacy 🔒
• Secure Communication 🔐
• Professional Conduct 🤝

*This is NOT an escort service*
*Clean, verified, friendly companionship only*

Type 'menu' to go back to main menu.`
}

func (r *Renderer) Contact() string {
	return fmt.Sprintf(`📞 *CONTACT INFORMATION* 📞

*Business Details:*
🏢 %s
📱 WhatsApp: +91 %s
🌐 Website: %s
📧 Email: %s

*Business Hours:*
🕐 Available 24/7 for bookings
📅 Quick response guaranteed

*Ready to book? Type 'menu' to see our packages!*`, r.business.Name, r.business.Phone, r.business.Website, r.business.Email)
}

func (r *Renderer) QuickBooking() string {
	var b strings.Builder
	b.WriteString("🎯 *QUICK BOOKING* 🎯\n\n*Popular Packages:*\n")

	popular := []struct {
		category catalog.Category
		key      catalog.PackageKey
		label    string
	}{
		{catalog.CategoryRegular, catalog.Package1Hr, "Regular 1 Hour"},
		{catalog.CategoryRegular, catalog.Package3Hr, "Regular 3 Hours"},
		{catalog.CategoryEvent, catalog.Package1Hr, "Event 1 Hour"},
		{catalog.CategorySpecial, catalog.PackageMovie, "Movie Partner"},
	}
	for i, p := range popular {
		pkg, _ := catalog.Lookup(p.category, p.key)
		fmt.Fprintf(&b, "%d️⃣ %s - %s\n", i+1, p.label, pkg.Price)
	}

	b.WriteString("\n*Reply with package number (1-4) to book instantly!*\n\nOr type 'menu' for all packages.")
	return b.String()
}

func (r *Renderer) Packages(category catalog.Category) string {
	layout, ok := packageLayouts[category]
	if !ok {
		return textInvalidOption
	}

	var b strings.Builder
	b.WriteString(layout.header)
	b.WriteString("\n\n")

	for _, p := range catalog.Packages(category) {
		fmt.Fprintf(&b, "%s %s — %s\n", layout.icons[p.Key], p.Name, p.Price)
		if layout.descriptions {
			fmt.Fprintf(&b, "(%s)\n\n", p.Description)
		}
	}
	if !layout.descriptions {
		b.WriteString("\n")
	}

	if layout.note != "" {
		b.WriteString(layout.note)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "*Type your choice: %s*", layout.choices)
	return b.String()
}

func (r *Renderer) Help() string {
	return `🤔 I didn't understand that message.

Please choose from the options below:

*Quick Actions:*
• Type 'menu' - See all services
• Type 'book' - Quick booking
• Type 'contact' - Contact info
• Type 'about' - About us

*Or just say 'hi' to start fresh!*

We're here to help you find the perfect companion! 🤝`
}

func (r *Renderer) AskCity() string {
	var b strings.Builder
	b.WriteString("🏙️ Please choose your city (type exactly one):")
	for _, c := range allowedCities {
		b.WriteString("\n- ")
		b.WriteString(c)
	}
	return b.String()
}

// SpecializedSummary renders the captured details of a specialized booking.
func (r *Renderer) SpecializedSummary(state *entity.ConversationState) string {
	info := state.Info
	name := string(state.Package)
	if pkg, ok := state.SelectedPackage(); ok {
		name = pkg.Name
	}

	var details string
	switch state.Package {
	case catalog.PackageBike:
		details = fmt.Sprintf("🚲 %s\n📍 Pickup: %s\n📅 Date: %s", name, info.PickupLocation, info.Date)
	case catalog.PackageMovie:
		details = fmt.Sprintf("🎬 %s\n📅 Date: %s\n📍 Cinema & Timing: %s", name, info.Date, info.CinemaDetails)
	case catalog.PackageTravel:
		details = fmt.Sprintf("✈️ %s\n📅 Travel Dates: %s → %s", name, info.TravelFrom, info.TravelTo)
	case catalog.PackageWeekend:
		details = fmt.Sprintf("💕 %s\n📅 Date: %s\n⏰ Timings: %s", name, info.Date, info.Time)
	default:
		details = name
	}

	return "✅ Details captured\n\n" + details + "\n\n💰 Please complete payment to confirm your booking. Reply 'done' after payment."
}
