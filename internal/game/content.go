package game

import "math"

// Vec3 is a position in world units. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Dist returns the Euclidean distance to other.
func (v Vec3) Dist(other Vec3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ChoiceOutcome is one branch of a decision. Pure data, immutable once loaded.
type ChoiceOutcome struct {
	Label           string
	StockImpact     float64 // applied to stock price; negative values are scaled on harder difficulties
	SuspicionImpact float64 // applied to suspicion; positive values are scaled on harder difficulties
	Description     string
	ConsultPrompt   string // free-text prompt handed to the commentary service
}

// Document is the read-only body of a document-type decision point.
type Document struct {
	Title   string
	Content string
}

// DecisionPoint is a discoverable narrative/scoring unit placed in the world.
// Points with a non-nil Doc open a read-only viewer with a single
// "flag as suspicious" action instead of the honest/fraud choice.
type DecisionPoint struct {
	ID       string
	Title    string
	Problem  string
	Position Vec3
	Level    int
	Resolved bool
	Honest   ChoiceOutcome
	Fraud    ChoiceOutcome
	Doc      *Document
}

// IsDocument reports whether this point uses the document-flag side path.
func (d *DecisionPoint) IsDocument() bool {
	return d.Doc != nil
}

// GameLevel is a progression stage. IDs are 1-based and contiguous.
type GameLevel struct {
	ID          int
	Title       string
	Rank        string
	TargetEPS   string
	Description string
}

// QuizQuestion is one boardroom interrogation question for a level.
type QuizQuestion struct {
	Level       int
	Question    string
	Options     []string
	Correct     int
	Explanation string
}

// TimelineEvent is one entry of the historical timeline overlay.
type TimelineEvent struct {
	Date  string
	Event string
}

// KeyFigure is a person card in the corporate-files overlay.
type KeyFigure struct {
	Name        string
	Role        string
	Description string
	Outcome     string
}

// FraudMethod describes one accounting mechanism used in the fraud.
type FraudMethod struct {
	Name        string
	Description string
	Amount      string
}

// ImpactFact is one aggregate-damage statistic.
type ImpactFact struct {
	Title  string
	Detail string
	Stat   string
}

// Difficulty selects a tuning preset. Frozen at the MENU→GAMEPLAY transition.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
	difficultyCount // sentinel
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "EASY"
	case DifficultyMedium:
		return "MEDIUM"
	case DifficultyHard:
		return "HARD"
	default:
		return "UNKNOWN"
	}
}

// DifficultyConfig is a named tuning preset. Immutable for the session.
//
// Scaling only punishes bad news: SuspicionMultiplier applies to positive
// suspicion deltas, StockLossMultiplier to negative stock deltas. Positive
// stock and negative suspicion deltas are never scaled.
type DifficultyConfig struct {
	Label               string
	Description         string
	PassiveDecayRate    float64 // stock lost per decay tick while uninterrupted in gameplay
	SuspicionMultiplier float64
	StockLossMultiplier float64
	AuditorAggression   string // persona tag for the commentary service
}

// difficultyConfigs indexes presets by Difficulty.
var difficultyConfigs = [difficultyCount]DifficultyConfig{
	DifficultyEasy: {
		Label:               "EASY",
		Description:         "The analysts love you. The auditors are asleep.",
		PassiveDecayRate:    0.05,
		SuspicionMultiplier: 1.0,
		StockLossMultiplier: 1.0,
		AuditorAggression:   "a relaxed external auditor who rarely digs into detail",
	},
	DifficultyMedium: {
		Label:               "MEDIUM",
		Description:         "Wall Street expects double-digit growth. Every quarter.",
		PassiveDecayRate:    0.10,
		SuspicionMultiplier: 1.5,
		StockLossMultiplier: 1.5,
		AuditorAggression:   "a sceptical auditor who asks for supporting documentation",
	},
	DifficultyHard: {
		Label:               "HARD",
		Description:         "Cynthia Cooper works nights. The SEC is already watching.",
		PassiveDecayRate:    0.20,
		SuspicionMultiplier: 2.0,
		StockLossMultiplier: 2.0,
		AuditorAggression:   "a forensic auditor who reconciles every journal entry to an invoice",
	},
}

// ConfigFor returns the tuning preset for a difficulty.
func ConfigFor(d Difficulty) DifficultyConfig {
	if d < 0 || d >= difficultyCount {
		return difficultyConfigs[DifficultyMedium]
	}
	return difficultyConfigs[d]
}

// gameLevels is the fixed progression ladder, ordered by ID.
var gameLevels = []GameLevel{
	{
		ID:          1,
		Title:       "1999: The Height of the Bubble",
		Rank:        "Chief Financial Officer",
		TargetEPS:   "$0.30",
		Description: "The stock is soaring at $64. The Sprint merger is on the table. Keep the expense-to-revenue ratio down to get regulatory approval.",
	},
	{
		ID:          2,
		Title:       "Q3 2000: The Burst & The Failed Merger",
		Rank:        "Chief Financial Officer",
		TargetEPS:   "$0.45",
		Description: "Regulators blocked the Sprint merger. The dot-com bubble burst. Customers are defaulting. Wall Street still expects double-digit growth.",
	},
	{
		ID:          3,
		Title:       "Q1 2001: The Slippery Slope",
		Rank:        "Chief Financial Officer",
		TargetEPS:   "$0.52",
		Description: "Line costs are eating the profits. The prepaid-capacity accounts are messy. Ebbers has $400M in margin calls and needs the stock high.",
	},
	{
		ID:          4,
		Title:       "Q4 2001: The Deepening Hole",
		Rank:        "Chief Financial Officer",
		TargetEPS:   "$0.60",
		Description: "The fraud is in the billions. Line costs are moving into PP&E. Vinson and Normand are threatening to quit.",
	},
	{
		ID:          5,
		Title:       "Q2 2002: The House of Cards",
		Rank:        "Chief Financial Officer",
		TargetEPS:   "$0.75",
		Description: "The hole is $3.8 billion deep. Internal audit is interviewing the capital expenditure team. The SEC has sent a request for information. Survive.",
	},
}

// Levels returns the progression ladder. Callers must not mutate the result.
func Levels() []GameLevel {
	return gameLevels
}

// MaxLevel is the final level ID.
func MaxLevel() int {
	return gameLevels[len(gameLevels)-1].ID
}

// LevelByID returns the level with the given ID, clamped to the valid range.
func LevelByID(id int) GameLevel {
	if id < 1 {
		return gameLevels[0]
	}
	if id > len(gameLevels) {
		return gameLevels[len(gameLevels)-1]
	}
	return gameLevels[id-1]
}

// newDecisionPoints builds a fresh mutable copy of the decision-point table.
// Called once per session so resolved flags never leak across restarts.
func newDecisionPoints() []*DecisionPoint {
	pts := make([]*DecisionPoint, len(decisionPointTable))
	for i := range decisionPointTable {
		cp := decisionPointTable[i]
		pts[i] = &cp
	}
	return pts
}

// decisionPointTable is the static content behind newDecisionPoints.
var decisionPointTable = []DecisionPoint{
	// Level 1: 1999.
	{
		ID:       "sprint_merger_synergies",
		Title:    `Sprint Merger "Synergies"`,
		Problem:  "To justify the Sprint merger to the DOJ we need lower line costs. Actual costs are 42% of revenue. We need them at 38%.",
		Level:    1,
		Position: Vec3{X: 40, Y: 8, Z: 40},
		Honest: ChoiceOutcome{
			Label:           "Report actual 42% ratio",
			StockImpact:     -10.0,
			SuspicionImpact: 0,
			Description:     "The DOJ sees we are inefficient. The merger might fail on economics alone. Stock dips.",
			ConsultPrompt:   "Impact of high operating ratios on telecom merger approvals in 1999?",
		},
		Fraud: ChoiceOutcome{
			Label:           "Release $400M tax reserves",
			StockImpact:     5.0,
			SuspicionImpact: 10,
			Description:     "Release old tax cushions into income to offset line costs. It's a one-time adjustment.",
			ConsultPrompt:   "Is releasing tax reserves to boost operating income GAAP compliant?",
		},
	},
	{
		ID:       "mci_integration_writeoff",
		Title:    "MCI Integration Costs",
		Problem:  "Lingering costs from the MCI acquisition. Write them off now, or hide them.",
		Level:    1,
		Position: Vec3{X: -60, Y: 8, Z: -60},
		Honest: ChoiceOutcome{
			Label:           "Take the charge now",
			StockImpact:     -5.0,
			SuspicionImpact: 0,
			Description:     "Short-term pain, but clean books.",
			ConsultPrompt:   "Accounting treatment for merger integration costs.",
		},
		Fraud: ChoiceOutcome{
			Label:           "Double-dip the write-off",
			StockImpact:     8.0,
			SuspicionImpact: 15,
			Description:     "Write off ordinary expenses as merger integration charges so they read as non-recurring.",
			ConsultPrompt:   "What is 'big bath' accounting in mergers?",
		},
	},

	// Level 2: Q3 2000.
	{
		ID:       "bad_debt_reserve",
		Title:    "The Bad Debt Crisis",
		Problem:  "Dot-com clients are bankrupt. $685M in uncollectible bills. Booking the bad debt means missing the quarter.",
		Level:    2,
		Position: Vec3{X: 100, Y: 8, Z: 100},
		Honest: ChoiceOutcome{
			Label:           "Write off the debt",
			StockImpact:     -25.0,
			SuspicionImpact: -5,
			Description:     "Miss earnings by 15 cents. The stock crashes. Ebbers is furious.",
			ConsultPrompt:   "Consequences of missing earnings estimates in 2000?",
		},
		Fraud: ChoiceOutcome{
			Label:           "Release line-cost reserves",
			StockImpact:     5.0,
			SuspicionImpact: 20,
			Description:     "Excess accruals for carrier disputes get released to revenue to cover the bad debt.",
			ConsultPrompt:   "Using liability reserve releases to mask bad debt expense.",
		},
	},
	{
		ID:       "unallocated_revenue",
		Title:    "Corporate Unallocated",
		Problem:  "The MonRev report shows we are short on revenue growth targets. The regions can't find any more sales.",
		Level:    2,
		Position: Vec3{X: -100, Y: 8, Z: 100},
		Honest: ChoiceOutcome{
			Label:           "Report flat revenue",
			StockImpact:     -30.0,
			SuspicionImpact: 0,
			Description:     "The growth story ends. Analysts downgrade WorldCom from Buy to Hold.",
			ConsultPrompt:   "Market reaction to flat revenue in a growth stock.",
		},
		Fraud: ChoiceOutcome{
			Label:           "Book 'unallocated' revenue",
			StockImpact:     5.0,
			SuspicionImpact: 25,
			Description:     "Journal entry: debit A/R, credit revenue. No customer attached. Call it Corporate Unallocated.",
			ConsultPrompt:   "How to detect top-side journal entries with no supporting documentation?",
		},
	},

	// Level 3: Q1 2001.
	{
		ID:       "line_cost_capitalization",
		Title:    "The Capitalization Plan",
		Problem:  "Line costs are $771M over budget and there are no more reserves to release. We need a new way to hide expenses.",
		Level:    3,
		Position: Vec3{X: 100, Y: 8, Z: 0},
		Honest: ChoiceOutcome{
			Label:           "Report the loss",
			StockImpact:     -40.0,
			SuspicionImpact: 0,
			Description:     "The stock drops below $10. Ebbers receives margin calls.",
			ConsultPrompt:   "What happens when a CEO gets margin called on their own company stock?",
		},
		Fraud: ChoiceOutcome{
			Label:           "Capitalize line costs",
			StockImpact:     10.0,
			SuspicionImpact: 35,
			Description:     "Move $771M from line-cost expense to the prepaid-capacity asset account and depreciate over ten years.",
			ConsultPrompt:   "Difference between operating expense and capital expenditure.",
		},
	},
	{
		ID:       "prepaid_capacity_memo",
		Title:    "Prepaid Capacity Memo",
		Problem:  "A controller's memo left on a desk in the accounting department.",
		Level:    3,
		Position: Vec3{X: 0, Y: 8, Z: 0},
		Doc: &Document{
			Title: "Q3 Capitalization of Line Costs",
			Content: "TO: Scott Sullivan, CFO\nFROM: David Myers, Controller\n\n" +
				"Per your instruction, we are transferring $771 million of line cost expenses " +
				"to the 'Prepaid Capacity' asset account.\n\n" +
				"Please note that there is no supporting documentation for these entries. " +
				"If the auditors ask for invoices, we do not have them.\n\n" +
				"This treatment is aggressive and likely violates GAAP matching principles.",
		},
	},
	{
		ID:       "betty_vinson_reluctance",
		Title:    "The Accountants Rebel",
		Problem:  "Betty Vinson and Troy Normand are refusing to make the entries. They know it is illegal.",
		Level:    3,
		Position: Vec3{X: -100, Y: 8, Z: 0},
		Honest: ChoiceOutcome{
			Label:           "Listen to them",
			StockImpact:     -50.0,
			SuspicionImpact: -10,
			Description:     "You stop the fraud. The company collapses, but you stay out of jail.",
			ConsultPrompt:   "Whistleblower protections in 2001.",
		},
		Fraud: ChoiceOutcome{
			Label:           "Coerce them",
			StockImpact:     2.0,
			SuspicionImpact: 20,
			Description:     "Tell them it's just for one quarter. Tell them the plane will crash if they don't do it. Pay a retention bonus.",
			ConsultPrompt:   "Psychological tactics used in corporate fraud coercion.",
		},
	},

	// Level 4: Q4 2001.
	{
		ID:       "ppe_transfers",
		Title:    "Hiding in PP&E",
		Problem:  "The prepaid-capacity account is past $2B. Auditors might notice. We need a better hiding spot.",
		Level:    4,
		Position: Vec3{X: 40, Y: 8, Z: -100},
		Honest: ChoiceOutcome{
			Label:           "Restate financials",
			StockImpact:     -80.0,
			SuspicionImpact: 80,
			Description:     "Admission of guilt. Immediate investigation.",
			ConsultPrompt:   "Process of financial restatement.",
		},
		Fraud: ChoiceOutcome{
			Label:           "Spread to PP&E",
			StockImpact:     5.0,
			SuspicionImpact: 30,
			Description:     "Move the costs into general property, plant and equipment accounts across thousands of assets so it's harder to trace.",
			ConsultPrompt:   "How auditors verify property, plant, and equipment assets.",
		},
	},

	// Level 5: Q2 2002.
	{
		ID:       "cynthia_cooper_audit",
		Title:    "Cooper's Investigation",
		Problem:  "Cynthia Cooper found a $2B capital entry with no invoice. She is asking David Myers for backup.",
		Level:    5,
		Position: Vec3{X: -40, Y: 8, Z: -100},
		Honest: ChoiceOutcome{
			Label:           "Admit it's an error",
			StockImpact:     -95.0,
			SuspicionImpact: 100,
			Description:     "Game over. The fraud is revealed.",
			ConsultPrompt:   "Impact of the WorldCom fraud discovery.",
		},
		Fraud: ChoiceOutcome{
			Label:           "Block access",
			StockImpact:     -10.0,
			SuspicionImpact: 50,
			Description:     "Tell Myers to delay her. Change the passwords to the accounting system. Say it's prepaid capacity again.",
			ConsultPrompt:   "Obstruction of justice charges in corporate fraud.",
		},
	},
	{
		ID:       "andersen_collapse",
		Title:    "Arthur Andersen Collapse",
		Problem:  "Enron has collapsed. Our auditor, Arthur Andersen, is dissolving. The SEC is looking at all their clients, including us.",
		Level:    5,
		Position: Vec3{X: 0, Y: 8, Z: 100},
		Honest: ChoiceOutcome{
			Label:           "Cooperate with the SEC",
			StockImpact:     -90.0,
			SuspicionImpact: 100,
			Description:     "You hand over the books.",
			ConsultPrompt:   "SEC investigation procedures.",
		},
		Fraud: ChoiceOutcome{
			Label:           "Shred documents",
			StockImpact:     0.0,
			SuspicionImpact: 60,
			Description:     "Destroy the memos regarding the capitalization strategy.",
			ConsultPrompt:   "Legal consequences of shredding documents during an investigation.",
		},
	},
}

// quizQuestionTable holds every boardroom interrogation question, keyed by level.
var quizQuestionTable = []QuizQuestion{
	{
		Level:    1,
		Question: `Analyst: "How did you achieve such low line costs despite the traffic increase?"`,
		Options: []string{
			"We renegotiated contracts efficiently.",
			"We released tax reserves.",
			"I will not answer that.",
			"Magic.",
		},
		Correct:     0,
		Explanation: `Lying to analysts was routine. Management cited "synergies" and contract renegotiations to explain artificial cost drops.`,
	},
	{
		Level:    2,
		Question: `Board member: "Why is our revenue growing when the rest of the industry is flat?"`,
		Options: []string{
			"We are taking market share from AT&T.",
			"We are booking fake revenue.",
			"The industry data is wrong.",
			"We are just better.",
		},
		Correct:     0,
		Explanation: "Ebbers constantly claimed WorldCom was a growth stock taking share from incumbents to mask the flat actuals.",
	},
	{
		Level:    3,
		Question: `Betty Vinson: "I can't do this entry, Scott. It's just wrong. What account should I even use?"`,
		Options: []string{
			"Prepaid Capacity (asset).",
			"Office Supplies (expense).",
			"Salary Expense.",
			"Don't do it then.",
		},
		Correct:     0,
		Explanation: "The famous prepaid-capacity account was used as a dumping ground for operating line costs.",
	},
	{
		Level:    4,
		Question: `Auditor: "We need to see the invoices for this $2B in capital spending."`,
		Options: []string{
			"It is a fixed-rate allocation, not invoice based.",
			"The dog ate them.",
			"Talk to the CEO.",
			"Here are the fake invoices.",
		},
		Correct:     0,
		Explanation: "Sullivan argued the costs were fixed allocations for network capacity, implying they were assets, to avoid showing specific invoices.",
	},
	{
		Level:    5,
		Question: `SEC: "Mr. Sullivan, did you direct the capitalization of line costs?"`,
		Options: []string{
			"I rely on my accountants to follow GAAP.",
			"Yes, I did.",
			"What is capitalization?",
			"No comment.",
		},
		Correct:     0,
		Explanation: "Sullivan initially claimed he thought the entries were proper under a matching-principle theory, shifting blame to interpretation.",
	},
}

// QuestionsForLevel returns the quiz questions gating the given level.
func QuestionsForLevel(level int) []QuizQuestion {
	var out []QuizQuestion
	for i := range quizQuestionTable {
		if quizQuestionTable[i].Level == level {
			out = append(out, quizQuestionTable[i])
		}
	}
	return out
}

// HistoricalTimeline is the real-world event sequence shown in the HUD overlay.
var HistoricalTimeline = []TimelineEvent{
	{Date: "1999", Event: "WorldCom stock peaks at $64. Merger with Sprint proposed."},
	{Date: "July 2000", Event: "DOJ blocks the Sprint merger. Dot-com bubble bursts."},
	{Date: "Oct 2000", Event: "Third-quarter earnings warning. Stock drops."},
	{Date: "2001", Event: "$3.8 billion in line costs capitalized into assets."},
	{Date: "Mar 2002", Event: "SEC requests information. Ebbers resigns in April."},
	{Date: "June 2002", Event: "Cynthia Cooper unearths the fraud. WorldCom admits a $3.8B error."},
	{Date: "July 2002", Event: "WorldCom files for Chapter 11 bankruptcy."},
}

// KeyFigures are the people cards in the corporate-files overlay.
var KeyFigures = []KeyFigure{
	{Name: "Bernie Ebbers", Role: "CEO", Description: "The cowboy CEO. Obsessed with the stock price. Owes $400M on margin.", Outcome: "Convicted: 25 years."},
	{Name: "Scott Sullivan", Role: "CFO (you)", Description: "The architect. Believed the revenue dip was temporary. Just needed to bridge the gap.", Outcome: "Convicted: 5 years."},
	{Name: "Cynthia Cooper", Role: "VP Internal Audit", Description: "The whistleblower. Worked at night to find the entries.", Outcome: "Time Person of the Year."},
	{Name: "David Myers", Role: "Controller", Description: `Executed Sullivan's orders. "I thought we would fix it next quarter."`, Outcome: "Convicted: 1 year."},
	{Name: "Betty Vinson", Role: "Director", Description: `Made the entries. Was told "just one more time".`, Outcome: "Convicted: 5 months."},
}

// FraudMethods summarize the mechanisms of the fraud.
var FraudMethods = []FraudMethod{
	{Name: "Cookie Jar Reserves", Description: "Releasing tax liabilities to revenue.", Amount: "$3.3B"},
	{Name: "CapEx Transfers", Description: "Moving line costs to assets.", Amount: "$3.8B"},
	{Name: "Corporate Unallocated", Description: "Fake revenue entries.", Amount: "$1.2B"},
}

// WorldImpact are the aggregate-damage statistics.
var WorldImpact = []ImpactFact{
	{Title: "Market Cap Lost", Detail: "From peak to trough.", Stat: "$180B"},
	{Title: "Jobs Lost", Detail: "Employees laid off.", Stat: "30,000"},
	{Title: "Pension Funds", Detail: "Retirement savings wiped out.", Stat: "$1.1B"},
}
