package catalog

// MerchantRule maps a lowercase merchant substring to a category. Rules are
// consulted in declaration order, so more specific substrings must be
// declared before the generic ones they contain ("uber eats" before "uber",
// "amazon web services" before "amazon").
type MerchantRule struct {
	Substring string
	Category  string
}

var merchantLookup = []MerchantRule{
	// Meals (24b)
	{"uber eats", "Meals"},
	{"starbucks", "Meals"},
	{"dunkin", "Meals"},
	{"mcdonald", "Meals"},
	{"chipotle", "Meals"},
	{"subway", "Meals"},
	{"panera", "Meals"},
	{"chick-fil-a", "Meals"},
	{"wendy's", "Meals"},
	{"taco bell", "Meals"},
	{"domino's", "Meals"},
	{"pizza hut", "Meals"},
	{"papa john", "Meals"},
	{"kfc", "Meals"},
	{"five guys", "Meals"},
	{"shake shack", "Meals"},
	{"sweetgreen", "Meals"},
	{"jimmy john", "Meals"},
	{"panda express", "Meals"},
	{"olive garden", "Meals"},
	{"applebee", "Meals"},
	{"chili's", "Meals"},
	{"ihop", "Meals"},
	{"denny's", "Meals"},
	{"cheesecake factory", "Meals"},
	{"outback steakhouse", "Meals"},
	{"red lobster", "Meals"},
	{"buffalo wild wings", "Meals"},
	{"doordash", "Meals"},
	{"grubhub", "Meals"},
	{"postmates", "Meals"},
	{"caviar", "Meals"},
	{"pret a manger", "Meals"},
	{"au bon pain", "Meals"},
	{"jamba", "Meals"},
	{"peet's", "Meals"},
	{"caribou coffee", "Meals"},
	{"tim hortons", "Meals"},

	// Car and Truck Expenses (9)
	{"shell oil", "Car and Truck Expenses"},
	{"shell service", "Car and Truck Expenses"},
	{"chevron", "Car and Truck Expenses"},
	{"exxon", "Car and Truck Expenses"},
	{"mobil", "Car and Truck Expenses"},
	{"texaco", "Car and Truck Expenses"},
	{"sunoco", "Car and Truck Expenses"},
	{"valero", "Car and Truck Expenses"},
	{"citgo", "Car and Truck Expenses"},
	{"marathon petro", "Car and Truck Expenses"},
	{"speedway", "Car and Truck Expenses"},
	{"wawa", "Car and Truck Expenses"},
	{"circle k", "Car and Truck Expenses"},
	{"quiktrip", "Car and Truck Expenses"},
	{"racetrac", "Car and Truck Expenses"},
	{"autozone", "Car and Truck Expenses"},
	{"o'reilly auto", "Car and Truck Expenses"},
	{"advance auto", "Car and Truck Expenses"},
	{"napa auto", "Car and Truck Expenses"},
	{"jiffy lube", "Car and Truck Expenses"},
	{"valvoline", "Car and Truck Expenses"},
	{"midas", "Car and Truck Expenses"},
	{"firestone", "Car and Truck Expenses"},
	{"goodyear", "Car and Truck Expenses"},
	{"pep boys", "Car and Truck Expenses"},
	{"discount tire", "Car and Truck Expenses"},
	{"uber", "Car and Truck Expenses"},
	{"lyft", "Car and Truck Expenses"},
	{"parkmobile", "Car and Truck Expenses"},
	{"spothero", "Car and Truck Expenses"},
	{"e-zpass", "Car and Truck Expenses"},
	{"fastrak", "Car and Truck Expenses"},
	{"car wash", "Car and Truck Expenses"},

	// Travel (24a)
	{"delta air", "Travel"},
	{"united airlines", "Travel"},
	{"american airlines", "Travel"},
	{"southwest air", "Travel"},
	{"jetblue", "Travel"},
	{"alaska air", "Travel"},
	{"spirit air", "Travel"},
	{"frontier air", "Travel"},
	{"hawaiian air", "Travel"},
	{"marriott", "Travel"},
	{"hilton", "Travel"},
	{"hyatt", "Travel"},
	{"sheraton", "Travel"},
	{"westin", "Travel"},
	{"holiday inn", "Travel"},
	{"hampton inn", "Travel"},
	{"best western", "Travel"},
	{"la quinta", "Travel"},
	{"motel 6", "Travel"},
	{"super 8", "Travel"},
	{"airbnb", "Travel"},
	{"vrbo", "Travel"},
	{"expedia", "Travel"},
	{"booking.com", "Travel"},
	{"priceline", "Travel"},
	{"kayak.com", "Travel"},
	{"orbitz", "Travel"},
	{"amtrak", "Travel"},
	{"greyhound", "Travel"},
	{"hertz", "Travel"},
	{"avis", "Travel"},
	{"enterprise rent", "Travel"},
	{"national car rental", "Travel"},
	{"budget rent", "Travel"},
	{"alamo rent", "Travel"},
	{"thrifty car", "Travel"},
	{"turo", "Travel"},

	// Office Expense (18)
	{"amazon web services", "Office Expense"},
	{"aws.amazon", "Office Expense"},
	{"staples", "Office Expense"},
	{"office depot", "Office Expense"},
	{"officemax", "Office Expense"},
	{"fedex office", "Office Expense"},
	{"fedex", "Office Expense"},
	{"ups store", "Office Expense"},
	{"usps", "Office Expense"},
	{"stamps.com", "Office Expense"},
	{"pitney bowes", "Office Expense"},
	{"best buy", "Office Expense"},
	{"apple.com", "Office Expense"},
	{"apple store", "Office Expense"},
	{"b&h photo", "Office Expense"},
	{"newegg", "Office Expense"},
	{"dell.com", "Office Expense"},
	{"lenovo", "Office Expense"},
	{"logitech", "Office Expense"},
	{"adobe", "Office Expense"},
	{"microsoft", "Office Expense"},
	{"google workspace", "Office Expense"},
	{"google storage", "Office Expense"},
	{"dropbox", "Office Expense"},
	{"zoom.us", "Office Expense"},
	{"zoom video", "Office Expense"},
	{"slack", "Office Expense"},
	{"github", "Office Expense"},
	{"gitlab", "Office Expense"},
	{"atlassian", "Office Expense"},
	{"notion", "Office Expense"},
	{"canva", "Office Expense"},
	{"figma", "Office Expense"},
	{"1password", "Office Expense"},
	{"lastpass", "Office Expense"},
	{"docusign", "Office Expense"},
	{"calendly", "Office Expense"},
	{"zapier", "Office Expense"},
	{"evernote", "Office Expense"},
	{"grammarly", "Office Expense"},
	{"digitalocean", "Office Expense"},
	{"linode", "Office Expense"},
	{"heroku", "Office Expense"},
	{"netlify", "Office Expense"},
	{"vercel", "Office Expense"},
	{"cloudflare", "Office Expense"},
	{"backblaze", "Office Expense"},
	{"openai", "Office Expense"},
	{"anthropic", "Office Expense"},
	{"twilio", "Office Expense"},
	{"sendgrid", "Office Expense"},
	{"zendesk", "Office Expense"},
	{"hubspot", "Office Expense"},
	{"salesforce", "Office Expense"},
	{"quickbooks", "Office Expense"},
	{"intuit", "Office Expense"},
	{"freshbooks", "Office Expense"},
	{"squarespace", "Office Expense"},
	{"wix.com", "Office Expense"},
	{"godaddy", "Office Expense"},
	{"namecheap", "Office Expense"},
	{"hover.com", "Office Expense"},
	{"bluehost", "Office Expense"},
	{"dreamhost", "Office Expense"},

	// Supplies (22)
	{"home depot", "Supplies"},
	{"lowe's", "Supplies"},
	{"ace hardware", "Supplies"},
	{"true value", "Supplies"},
	{"harbor freight", "Supplies"},
	{"menards", "Supplies"},
	{"grainger", "Supplies"},
	{"uline", "Supplies"},
	{"fastenal", "Supplies"},
	{"michaels", "Supplies"},
	{"hobby lobby", "Supplies"},
	{"joann", "Supplies"},
	{"costco", "Supplies"},
	{"sam's club", "Supplies"},
	{"walmart", "Supplies"},
	{"target", "Supplies"},
	{"dollar tree", "Supplies"},
	{"dollar general", "Supplies"},
	{"amazon", "Supplies"},
	{"ikea", "Supplies"},
	{"container store", "Supplies"},

	// Advertising (8)
	{"facebook ads", "Advertising"},
	{"facebk", "Advertising"},
	{"meta platforms", "Advertising"},
	{"google ads", "Advertising"},
	{"googleads", "Advertising"},
	{"microsoft ads", "Advertising"},
	{"linkedin", "Advertising"},
	{"twitter ads", "Advertising"},
	{"tiktok ads", "Advertising"},
	{"pinterest ads", "Advertising"},
	{"yelp", "Advertising"},
	{"taboola", "Advertising"},
	{"outbrain", "Advertising"},
	{"mailchimp", "Advertising"},
	{"constant contact", "Advertising"},
	{"hootsuite", "Advertising"},
	{"buffer.com", "Advertising"},
	{"vistaprint", "Advertising"},
	{"moo.com", "Advertising"},
	{"sticker mule", "Advertising"},

	// Utilities (25)
	{"verizon", "Utilities"},
	{"at&t", "Utilities"},
	{"t-mobile", "Utilities"},
	{"comcast", "Utilities"},
	{"xfinity", "Utilities"},
	{"spectrum", "Utilities"},
	{"cox comm", "Utilities"},
	{"centurylink", "Utilities"},
	{"frontier comm", "Utilities"},
	{"directv", "Utilities"},
	{"dish network", "Utilities"},
	{"pg&e", "Utilities"},
	{"con edison", "Utilities"},
	{"coned", "Utilities"},
	{"duke energy", "Utilities"},
	{"national grid", "Utilities"},
	{"dominion energy", "Utilities"},
	{"xcel energy", "Utilities"},
	{"american water", "Utilities"},

	// Insurance (15)
	{"geico", "Insurance"},
	{"progressive ins", "Insurance"},
	{"state farm", "Insurance"},
	{"allstate", "Insurance"},
	{"hiscox", "Insurance"},
	{"hartford", "Insurance"},
	{"next insurance", "Insurance"},
	{"nationwide ins", "Insurance"},
	{"liberty mutual", "Insurance"},
	{"farmers ins", "Insurance"},
	{"travelers ins", "Insurance"},
	{"errors & omissions", "Insurance"},

	// Legal and Professional Services (17)
	{"legalzoom", "Legal and Professional Services"},
	{"rocketlawyer", "Legal and Professional Services"},
	{"rocket lawyer", "Legal and Professional Services"},
	{"h&r block", "Legal and Professional Services"},
	{"turbotax", "Legal and Professional Services"},
	{"taxact", "Legal and Professional Services"},
	{"upcounsel", "Legal and Professional Services"},
	{"notarize", "Legal and Professional Services"},
	{"gusto", "Legal and Professional Services"},
	{"adp payroll", "Legal and Professional Services"},
	{"paychex", "Legal and Professional Services"},
	{"law office", "Legal and Professional Services"},
	{"cpa", "Legal and Professional Services"},

	// Contract Labor (11)
	{"upwork", "Contract Labor"},
	{"fiverr", "Contract Labor"},
	{"freelancer.com", "Contract Labor"},
	{"taskrabbit", "Contract Labor"},
	{"toptal", "Contract Labor"},
	{"99designs", "Contract Labor"},

	// Commissions and Fees (10)
	{"stripe", "Commissions and Fees"},
	{"paypal", "Commissions and Fees"},
	{"square fee", "Commissions and Fees"},
	{"ebay fee", "Commissions and Fees"},
	{"etsy fee", "Commissions and Fees"},
	{"shopify", "Commissions and Fees"},
	{"gumroad", "Commissions and Fees"},

	// Rent or Lease (20b)
	{"wework", "Rent or Lease"},
	{"regus", "Rent or Lease"},
	{"industrious", "Rent or Lease"},
	{"public storage", "Rent or Lease"},
	{"extra space", "Rent or Lease"},
	{"cubesmart", "Rent or Lease"},
	{"u-haul", "Rent or Lease"},
	{"penske truck", "Rent or Lease"},

	// Repairs and Maintenance (21)
	{"handyman", "Repairs and Maintenance"},
	{"roto-rooter", "Repairs and Maintenance"},
	{"servpro", "Repairs and Maintenance"},
	{"stanley steemer", "Repairs and Maintenance"},
	{"terminix", "Repairs and Maintenance"},
	{"orkin", "Repairs and Maintenance"},
	{"geek squad", "Repairs and Maintenance"},
}
