package site

// Card is a titled block of copy used by several sections.
type Card struct {
	Title       string
	Description string
	Stat        string
	StatLabel   string
	Impact      string
}

// Metric is a headline number with its unit suffix.
type Metric struct {
	Value       string
	Suffix      string
	Label       string
	Description string
}

// Testimonial is one social proof quote.
type Testimonial struct {
	Quote   string
	Author  string
	Company string
}

// NavLink points at a section anchor on the page.
type NavLink struct {
	Label string
	Href  string
}

// Content is the static marketing copy around the wizard.
type Content struct {
	Brand        string
	NavLinks     []NavLink
	HeroBadge    string
	Benefits     []string
	PainPoints   []Card
	Solutions    []Card
	Results      []Metric
	PastWork     []Card
	TrackRecord  []Metric
	Process      []Card
	Testimonials []Testimonial
	Employers    []string
	GiftModules  []string
	GiftFeatures []string
	GiftURL      string
	ContactEmail string
	LinkedInURL  string
}

// DefaultContent returns the page copy.
func DefaultContent() Content {
	return Content{
		Brand: "Pharma Supply Chain Automation",
		NavLinks: []NavLink{
			{Label: "Solution", Href: "#solution"},
			{Label: "Results", Href: "#results"},
			{Label: "Process", Href: "#process"},
			{Label: "About", Href: "#about"},
		},
		HeroBadge: "PharmaSync",
		Benefits:  []string{"Save 50+ hours/week", "Prevent $500K-$2M losses", "12:1 to 48:1 ROI"},
		PainPoints: []Card{
			{Title: "Critical Stockouts", Description: "A single stockout can cost $500K-$2M in lost revenue and regulatory penalties", Stat: "33%", StatLabel: "of facilities experience stockouts"},
			{Title: "Manual Data Entry", Description: "Supply chain planners waste 50+ hours per week on manual SAP/Excel work", Stat: "50+", StatLabel: "hours wasted weekly"},
			{Title: "Hidden Labor Costs", Description: "At $50-75/hour loaded cost, manual work wastes $130K-$195K annually per site", Stat: "$195K", StatLabel: "wasted per year"},
			{Title: "Spreadsheet Errors", Description: "90% of spreadsheets contain errors, risking billion-dollar mistakes", Stat: "90%", StatLabel: "of spreadsheets have errors"},
		},
		Solutions: []Card{
			{Title: "Real-Time DOC Dashboard", Description: "Complete Days of Coverage visibility across all SKUs. No more opening SAP APO one by one."},
			{Title: "Stockout Prevention", Description: "Predict stockouts 4-8 weeks in advance with automated alerts. Prevent disruptions before they happen."},
			{Title: "Supply Simulations", Description: "Instantly simulate supply scenarios and see the impact. Make data-driven decisions in seconds."},
			{Title: "Automated MRP Coverage", Description: "Complete process order overview, consumption calculations, and gap identification at a glance."},
		},
		Results: []Metric{
			{Value: "50", Suffix: "+", Label: "Hours Saved Per Week", Description: "Eliminate manual SAP/Excel data extraction and processing"},
			{Value: "85", Suffix: "%", Label: "Reduction in Redundant Work", Description: "Automate repetitive tasks and focus on strategic decisions"},
			{Value: "70", Suffix: "%", Label: "Less Operational Stress", Description: "Proactive alerts replace reactive firefighting"},
			{Value: "3", Suffix: "x", Label: "Better Work-Life Balance", Description: "Leave on time knowing your supply chain is monitored"},
		},
		PastWork: []Card{
			{Title: "Days of Coverage Dashboard", Description: "Automated DOC overview for all SKUs instead of opening SAP APO one by one. Supply quantity simulation capability.", Impact: "Real-time visibility"},
			{Title: "MRP Coverage Plan", Description: "Complete dashboard with process order scheduling, consumption calculations, current inventory, open orders, and gap identification.", Impact: "50 hrs/week saved"},
			{Title: "Stock-Out Projections", Description: "Predictive analytics based on demand/supply data. Low shelf life, expiry risk, and write-off projections.", Impact: "Weeks of advance warning"},
			{Title: "Operational Planning File", Description: "Optimal changeovers, BOM coverage, DOC, planned shelf life, all automated for fine scheduling.", Impact: "Better scheduling"},
			{Title: "Capacity Analytics", Description: "Demonstrated capacity, run times, and actual performance reports with fine-tuning recommendations.", Impact: "Optimized throughput"},
			{Title: "Safety Stock Analytics", Description: "Data-driven safety stock calculations and product-per-line allocation simulations.", Impact: "Right inventory levels"},
		},
		TrackRecord: []Metric{
			{Value: "50", Suffix: "+", Label: "Hours Saved Weekly"},
			{Value: "2847", Label: "SKUs Monitored"},
			{Value: "12", Suffix: ":1", Label: "Minimum ROI"},
			{Value: "14", Suffix: " days", Label: "To First Insights"},
		},
		Process: []Card{
			{Title: "Discovery Call", Description: "We discuss your specific pain points, data sources, and priority areas. No commitments, just understanding."},
			{Title: "5-Week Free Trial", Description: "I build and deploy a working automation using your real SAP exports. You see results before you pay anything."},
			{Title: "Measure Impact", Description: "Track hours saved, stockouts prevented, and operational improvements. Quantify the ROI together."},
			{Title: "Ongoing Support", Description: "Continue with monthly service that includes updates, new features, and continuous improvement."},
		},
		Testimonials: []Testimonial{
			{Quote: "This automation saved our team 50+ hours per week. We went from firefighting to strategic planning.", Author: "Supply Chain Director", Company: "Major Pharma Manufacturing Site"},
			{Quote: "The stockout predictions have been incredibly accurate. We prevented three critical shortages in the first quarter alone.", Author: "Operations Manager", Company: "Contract Manufacturing Organization"},
			{Quote: "Finally, someone who understands pharma supply chain. The ROI was visible within the first month.", Author: "VP of Operations", Company: "Mid-Sized Pharmaceutical Company"},
		},
		Employers:    []string{"Novartis", "Sandoz", "Lek d.d.", "Global Pharma Partners"},
		GiftModules:  []string{"VBA Fundamentals", "SAP Data Integration", "Dashboard Creation", "Advanced Automation"},
		GiftFeatures: []string{"Complete VBA fundamentals & advanced techniques", "Real-world Excel automation examples", "Step-by-step tutorials from beginner to expert"},
		GiftURL:      "https://drive.google.com/drive/folders/1RU74CJ6M5f9Rkgf6rQLDuTBzacWFJuyc?usp=drive_link",
		ContactEmail: "sandi.srkoc@gmail.com",
		LinkedInURL:  "https://www.linkedin.com/in/sandi-srkoc/",
	}
}
