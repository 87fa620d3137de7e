package domain

import "strings"

// SignConvention states which side increases an account's position.
type SignConvention string

const (
	// DebitIncreasing accounts read their position as debit minus credit.
	DebitIncreasing SignConvention = "DEBIT_INCREASING"
	// CreditIncreasing accounts read their position as credit minus debit.
	CreditIncreasing SignConvention = "CREDIT_INCREASING"
)

// Section is the statement section an account's position belongs to.
type Section string

const (
	SectionFixedAssets          Section = "FIXED_ASSETS"
	SectionCurrentAssets        Section = "CURRENT_ASSETS"
	SectionCashAssets           Section = "CASH_ASSETS"
	SectionEquity               Section = "EQUITY"
	SectionFinancialLiabilities Section = "FINANCIAL_LIABILITIES"
	SectionCurrentLiabilities   Section = "CURRENT_LIABILITIES"
	SectionCashLiabilities      Section = "CASH_LIABILITIES"
	SectionRevenue              Section = "REVENUE"
	SectionExpense              Section = "EXPENSE"
)

// IncomeBucket is the income statement aggregation bucket for revenue and
// expense accounts. Buckets feed the intermediate aggregate (SIG) chain.
type IncomeBucket string

const (
	BucketMerchandiseSales      IncomeBucket = "MERCHANDISE_SALES"
	BucketProduction            IncomeBucket = "PRODUCTION"
	BucketOtherOperatingRevenue IncomeBucket = "OTHER_OPERATING_REVENUE"
	BucketFinancialRevenue      IncomeBucket = "FINANCIAL_REVENUE"
	BucketDisposalProceeds      IncomeBucket = "DISPOSAL_PROCEEDS"

	BucketMerchandisePurchases  IncomeBucket = "MERCHANDISE_PURCHASES"
	BucketInventoryVariation    IncomeBucket = "INVENTORY_VARIATION"
	BucketExternalConsumption   IncomeBucket = "EXTERNAL_CONSUMPTION"
	BucketTaxes                 IncomeBucket = "TAXES"
	BucketStaffCosts            IncomeBucket = "STAFF_COSTS"
	BucketOtherOperatingExpense IncomeBucket = "OTHER_OPERATING_EXPENSE"
	BucketDepreciation          IncomeBucket = "DEPRECIATION"
	BucketFinancialExpense      IncomeBucket = "FINANCIAL_EXPENSE"
	BucketDisposalValues        IncomeBucket = "DISPOSAL_VALUES"
	BucketIncomeTax             IncomeBucket = "INCOME_TAX"
)

// ClassificationRule maps an account number prefix to a statement section,
// a sign convention, and (for revenue/expense accounts) an income bucket.
type ClassificationRule struct {
	Prefix  string
	Section Section
	Sign    SignConvention
	Bucket  IncomeBucket // empty for balance sheet accounts
}

// ClassificationTable is the static, versioned mapping of one accounting
// standard. Derivation logic never hard-codes account ranges; it always
// goes through a table so new standards only need a new table instance.
type ClassificationTable struct {
	StandardID string
	Version    string
	// ClassSigns is the published per-class sign convention. Sub-range
	// rules may override it (e.g. customer receivables inside class 4).
	ClassSigns map[int]SignConvention
	Rules      []ClassificationRule
}

// Sign returns the published sign convention for an account class,
// defaulting to debit-increasing for unknown classes.
func (t *ClassificationTable) Sign(class int) SignConvention {
	if s, ok := t.ClassSigns[class]; ok {
		return s
	}
	return DebitIncreasing
}

// Classify returns the rule for an account number using longest-prefix
// match, and false when no rule applies.
func (t *ClassificationTable) Classify(accountNumber string) (ClassificationRule, bool) {
	var best ClassificationRule
	found := false
	for _, r := range t.Rules {
		if strings.HasPrefix(accountNumber, r.Prefix) {
			if !found || len(r.Prefix) > len(best.Prefix) {
				best = r
				found = true
			}
		}
	}
	return best, found
}

// SYSCOHADAStandardID identifies the shipped OHADA revised chart table.
const SYSCOHADAStandardID = "SYSCOHADA"

// NewSYSCOHADATable builds the classification table for the OHADA revised
// chart of accounts (classes 1-7). Class 1 is credit-increasing per the
// published chart; the convention is spelled out per class rather than
// assuming classes 1-5 are debit-normal.
func NewSYSCOHADATable() *ClassificationTable {
	return &ClassificationTable{
		StandardID: SYSCOHADAStandardID,
		Version:    "2017-rev1",
		ClassSigns: map[int]SignConvention{
			1: CreditIncreasing, // capital, reserves, loans
			2: DebitIncreasing,  // fixed assets
			3: DebitIncreasing,  // inventories
			4: CreditIncreasing, // third parties, payables dominant
			5: DebitIncreasing,  // cash
			6: DebitIncreasing,  // expenses
			7: CreditIncreasing, // revenue
		},
		Rules: []ClassificationRule{
			// Class 1: equity, with financial debt sub-ranges.
			{Prefix: "1", Section: SectionEquity, Sign: CreditIncreasing},
			{Prefix: "16", Section: SectionFinancialLiabilities, Sign: CreditIncreasing},
			{Prefix: "17", Section: SectionFinancialLiabilities, Sign: CreditIncreasing},
			{Prefix: "18", Section: SectionFinancialLiabilities, Sign: CreditIncreasing},
			{Prefix: "19", Section: SectionFinancialLiabilities, Sign: CreditIncreasing},

			// Classes 2-3: fixed assets and inventories. Depreciation
			// accounts (28, 29, 39) stay in their section; their negative
			// positions net the gross values down.
			{Prefix: "2", Section: SectionFixedAssets, Sign: DebitIncreasing},
			{Prefix: "3", Section: SectionCurrentAssets, Sign: DebitIncreasing},

			// Class 4: payables by default, receivable sub-ranges on the
			// asset side.
			{Prefix: "4", Section: SectionCurrentLiabilities, Sign: CreditIncreasing},
			{Prefix: "409", Section: SectionCurrentAssets, Sign: DebitIncreasing},
			{Prefix: "41", Section: SectionCurrentAssets, Sign: DebitIncreasing},
			{Prefix: "419", Section: SectionCurrentLiabilities, Sign: CreditIncreasing},
			{Prefix: "47", Section: SectionCurrentAssets, Sign: DebitIncreasing},

			// Class 5: cash, with bank overdraft sub-range on the
			// liability side.
			{Prefix: "5", Section: SectionCashAssets, Sign: DebitIncreasing},
			{Prefix: "56", Section: SectionCashLiabilities, Sign: CreditIncreasing},

			// Class 6: expenses.
			{Prefix: "6", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketOtherOperatingExpense},
			{Prefix: "601", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketMerchandisePurchases},
			{Prefix: "602", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketExternalConsumption},
			{Prefix: "603", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketExternalConsumption},
			{Prefix: "6031", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketInventoryVariation},
			{Prefix: "604", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketExternalConsumption},
			{Prefix: "605", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketExternalConsumption},
			{Prefix: "606", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketExternalConsumption},
			{Prefix: "607", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketExternalConsumption},
			{Prefix: "608", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketExternalConsumption},
			{Prefix: "61", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketExternalConsumption},
			{Prefix: "62", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketExternalConsumption},
			{Prefix: "63", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketTaxes},
			{Prefix: "64", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketTaxes},
			{Prefix: "65", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketOtherOperatingExpense},
			{Prefix: "66", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketStaffCosts},
			{Prefix: "67", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketFinancialExpense},
			{Prefix: "675", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketDisposalValues},
			{Prefix: "68", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketDepreciation},
			{Prefix: "69", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketIncomeTax},
			{Prefix: "691", Section: SectionExpense, Sign: DebitIncreasing, Bucket: BucketDepreciation},

			// Class 7: revenue.
			{Prefix: "7", Section: SectionRevenue, Sign: CreditIncreasing, Bucket: BucketOtherOperatingRevenue},
			{Prefix: "701", Section: SectionRevenue, Sign: CreditIncreasing, Bucket: BucketMerchandiseSales},
			{Prefix: "70", Section: SectionRevenue, Sign: CreditIncreasing, Bucket: BucketProduction},
			{Prefix: "707", Section: SectionRevenue, Sign: CreditIncreasing, Bucket: BucketOtherOperatingRevenue},
			{Prefix: "708", Section: SectionRevenue, Sign: CreditIncreasing, Bucket: BucketOtherOperatingRevenue},
			{Prefix: "72", Section: SectionRevenue, Sign: CreditIncreasing, Bucket: BucketProduction},
			{Prefix: "73", Section: SectionRevenue, Sign: CreditIncreasing, Bucket: BucketProduction},
			{Prefix: "77", Section: SectionRevenue, Sign: CreditIncreasing, Bucket: BucketFinancialRevenue},
			{Prefix: "775", Section: SectionRevenue, Sign: CreditIncreasing, Bucket: BucketDisposalProceeds},
		},
	}
}

// StandardRegistry holds one classification table per supported accounting
// standard, keyed by StandardID.
type StandardRegistry struct {
	tables map[string]*ClassificationTable
}

// NewStandardRegistry creates a registry pre-loaded with the SYSCOHADA
// table.
func NewStandardRegistry() *StandardRegistry {
	r := &StandardRegistry{tables: make(map[string]*ClassificationTable)}
	r.Register(NewSYSCOHADATable())
	return r
}

// Register adds or replaces a standard's table.
func (r *StandardRegistry) Register(t *ClassificationTable) {
	r.tables[t.StandardID] = t
}

// Lookup returns the table for a standard, and false when unsupported.
func (r *StandardRegistry) Lookup(standardID string) (*ClassificationTable, bool) {
	t, ok := r.tables[standardID]
	return t, ok
}
