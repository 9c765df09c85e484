package standardize

import "strings"

// fuzzyRule maps a normalized-concept predicate to a unified label. Rules are
// evaluated in order and the first match wins, so specific rules must precede
// generic ones: "costofrevenue" contains the substring "revenue", and only the
// ordering keeps it out of the Revenue bucket.
type fuzzyRule struct {
	match func(c string) bool
	label string
}

func contains(c string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(c, s) {
			return true
		}
	}
	return false
}

var fuzzyRules = []fuzzyRule{
	// --- Income statement (specific -> generic) ---
	{func(c string) bool { return contains(c, "costofrevenue", "costofgood", "costofservice") },
		"Cost of Revenue"},
	{func(c string) bool { return strings.Contains(c, "costsandexpenses") },
		"Total Costs & Expenses"},
	{func(c string) bool { return strings.Contains(c, "grosspro") },
		"Gross Profit"},
	{func(c string) bool { return strings.Contains(c, "researchanddevelopment") },
		"Research & Development"},
	{func(c string) bool { return strings.Contains(c, "sellinggeneralandadministrative") },
		"Selling, General & Admin"},
	{func(c string) bool { return contains(c, "sellingandmarketing", "generalandadministrative") },
		"Selling, General & Admin"},
	{func(c string) bool { return contains(c, "operatingexpense", "operatingcostsandexpenses") },
		"Operating Expenses"},
	{func(c string) bool { return contains(c, "operatingincome", "operatingincomeloss") },
		"Operating Income"},
	{func(c string) bool { return strings.Contains(c, "interestexpense") && !strings.Contains(c, "income") },
		"Interest Expense"},
	{func(c string) bool {
		return contains(c, "investmentincome", "interestincome") && !strings.Contains(c, "expense")
	}, "Interest Income"},
	{func(c string) bool { return contains(c, "incometaxexpense", "incometaxbenefit") },
		"Income Tax Expense"},
	{func(c string) bool { return strings.Contains(c, "incomelossfromcontinuingoperationsbeforeincometax") },
		"Income Before Tax"},
	{func(c string) bool { return strings.Contains(c, "earningspersharebasic") },
		"EPS (Basic)"},
	{func(c string) bool { return strings.Contains(c, "earningspersharediluted") },
		"EPS (Diluted)"},
	{func(c string) bool { return strings.Contains(c, "weightedaveragenumberofsharesoutstandingbasic") },
		"Shares Outstanding (Basic)"},
	{func(c string) bool { return strings.Contains(c, "weightedaveragenumberofdilutedshares") },
		"Shares Outstanding (Diluted)"},
	{func(c string) bool { return contains(c, "netincome", "profitloss") },
		"Net Income"},
	// Revenue last: it is a substring of CostOfRevenue and DeferredRevenue.
	{func(c string) bool {
		return contains(c, "revenue", "sales") && !strings.Contains(c, "cost") &&
			!strings.Contains(c, "deferred") && !strings.Contains(c, "increasedecrease")
	}, "Revenue"},

	// --- Balance sheet ---
	{func(c string) bool {
		return strings.Contains(c, "cashandcashequivalents") && !strings.Contains(c, "period") &&
			!strings.Contains(c, "shortterm")
	}, "Cash & Equivalents"},
	{func(c string) bool { return strings.Contains(c, "cashcashequivalentsandshortterm") },
		"Cash & Short-term Investments"},
	{func(c string) bool { return contains(c, "accountsreceivable", "receivablesnet", "tradeandotherreceivables") },
		"Accounts Receivable"},
	{func(c string) bool { return contains(c, "inventorynet", "inventoryfinished", "inventorygross") },
		"Inventory"},
	{func(c string) bool {
		return strings.Contains(c, "assetscurrent") && !strings.Contains(c, "total") &&
			!strings.Contains(c, "other") && !strings.Contains(c, "deferred")
	}, "Total Current Assets"},
	{func(c string) bool { return strings.Contains(c, "propertyplantandequipment") },
		"Property, Plant & Equipment"},
	{func(c string) bool {
		return strings.Contains(c, "goodwill") && !strings.Contains(c, "impairment") &&
			!strings.Contains(c, "intangible")
	}, "Goodwill"},
	{func(c string) bool { return contains(c, "intangibleassetsnet", "finitelivedintangibleassets") },
		"Intangible Assets"},
	{func(c string) bool { return c == "usgaapassets" },
		"Total Assets"},
	{func(c string) bool { return strings.Contains(c, "accountspayable") && !strings.Contains(c, "increase") },
		"Accounts Payable"},
	{func(c string) bool {
		return contains(c, "debtcurrent", "shorttermborrowings", "commercialpaper", "shorttermdebt") ||
			(strings.Contains(c, "longtermdebt") && strings.Contains(c, "current") && !strings.Contains(c, "noncurrent"))
	}, "Short-term Debt"},
	{func(c string) bool { return strings.Contains(c, "contractwithcustomerliability") && !strings.Contains(c, "increase") },
		"Deferred Revenue"},
	{func(c string) bool { return strings.Contains(c, "liabilitiescurrent") },
		"Total Current Liabilities"},
	{func(c string) bool {
		return strings.Contains(c, "longtermdebt") && !strings.Contains(c, "increase") &&
			(strings.Contains(c, "noncurrent") || !strings.Contains(c, "current"))
	}, "Long-term Debt"},
	{func(c string) bool { return c == "usgaapliabilities" },
		"Total Liabilities"},
	{func(c string) bool { return strings.Contains(c, "stockholdersequity") },
		"Total Equity"},
	{func(c string) bool { return strings.Contains(c, "retainedearnings") },
		"Retained Earnings"},

	// --- Cash flow ---
	{func(c string) bool { return strings.Contains(c, "netcashprovidedbyusedinoperatingactivities") },
		"Operating Cash Flow"},
	{func(c string) bool {
		return contains(c, "paymentstoacquirepropertyplantandequipment", "paymentstoacquireproductiveassets")
	}, "Capital Expenditures"},
	{func(c string) bool { return strings.Contains(c, "netcashprovidedbyusedininvestingactivities") },
		"Investing Cash Flow"},
	{func(c string) bool { return strings.Contains(c, "netcashprovidedbyusedinfinancingactivities") },
		"Financing Cash Flow"},
	{func(c string) bool {
		return contains(c, "depreciation", "amortization") && !strings.Contains(c, "increasedecrease") &&
			!strings.Contains(c, "rightofuse") && !strings.Contains(c, "accumulated")
	}, "Depreciation & Amortization"},
	{func(c string) bool { return contains(c, "sharebasedcompensation", "stockbasedcompensation") },
		"Stock-based Compensation"},
	{func(c string) bool { return strings.Contains(c, "paymentsofdividends") },
		"Dividends Paid"},
	{func(c string) bool { return strings.Contains(c, "paymentsforrepurchase") },
		"Stock Repurchases"},
	{func(c string) bool {
		return contains(c, "proceedsfromissuanceofdebt", "proceedsfromdebt") && !strings.Contains(c, "repay")
	}, "Debt Issuance"},
	{func(c string) bool { return strings.Contains(c, "repaymentsof") && strings.Contains(c, "debt") },
		"Debt Repayment"},
	{func(c string) bool {
		return strings.Contains(c, "cashcashequivalentsrestrictedcash") && strings.Contains(c, "periodincreasedecrease")
	}, "Net Change in Cash"},
	{func(c string) bool { return strings.Contains(c, "interestpaid") },
		"Interest Paid"},
	{func(c string) bool { return strings.Contains(c, "incometaxespaid") },
		"Income Taxes Paid"},
}
