package standardize

// standardConceptMap maps unified display labels to the XBRL concepts that
// report them. Companies tag the same economic line item with different
// concepts across industries and taxonomy versions; this table is the
// hand-curated union observed across filings. Grouped by statement section.
var standardConceptMap = map[string][]string{
	// =========================================================================
	// INCOME STATEMENT
	// =========================================================================
	"Revenue": {
		"us-gaap_RevenueFromContractWithCustomerExcludingAssessedTax",
		"us-gaap_Revenues",
		"us-gaap_SalesRevenueNet",
		"us-gaap_SalesRevenueGoodsNet",
		"us-gaap_RevenueFromContractWithCustomerIncludingAssessedTax",
		"us-gaap_SalesRevenueServicesNet",
		"us-gaap_RegulatedAndUnregulatedOperatingRevenue",
		"us-gaap_ElectricUtilityRevenue",
		"us-gaap_OilAndGasRevenue",
		"us-gaap_HealthCareOrganizationRevenue",
		"us-gaap_FinancialServicesRevenue",
		"us-gaap_RealEstateRevenueNet",
		"us-gaap_ContractsRevenue",
	},
	"Cost of Revenue": {
		"us-gaap_CostOfRevenue",
		"us-gaap_CostOfGoodsAndServicesSold",
		"us-gaap_CostOfGoodsSold",
		"us-gaap_CostOfServices",
		"us-gaap_CostOfGoodsAndServiceExcludingDepreciationDepletionAndAmortization",
	},
	"Gross Profit": {
		"us-gaap_GrossProfit",
	},
	"Total Costs & Expenses": {
		"us-gaap_CostsAndExpenses",
	},
	"Operating Expenses": {
		"us-gaap_OperatingExpenses",
		"us-gaap_OperatingCostsAndExpenses",
	},
	"Research & Development": {
		"us-gaap_ResearchAndDevelopmentExpense",
		"us-gaap_ResearchAndDevelopmentExpenseExcludingAcquiredInProcessCost",
		"us-gaap_ResearchAndDevelopmentExpenseSoftwareExcludingAcquiredInProcessCost",
	},
	"Selling, General & Admin": {
		"us-gaap_SellingGeneralAndAdministrativeExpense",
		"us-gaap_SellingAndMarketingExpense",
		"us-gaap_GeneralAndAdministrativeExpense",
	},
	"Operating Income": {
		"us-gaap_OperatingIncomeLoss",
	},
	"Interest Expense": {
		"us-gaap_InterestExpense",
		"us-gaap_InterestExpenseNonoperating",
		"us-gaap_InterestExpenseDebt",
		"us-gaap_InterestIncomeExpenseNonoperatingNet",
		"us-gaap_InterestExpenseDeposits",
	},
	"Interest Income": {
		"us-gaap_InvestmentIncomeInterest",
		"us-gaap_InvestmentIncomeNet",
		"us-gaap_InterestIncomeOther",
		"us-gaap_InterestAndDividendIncomeOperating",
		"us-gaap_InterestIncome",
	},
	"Other Income (Expense)": {
		"us-gaap_NonoperatingIncomeExpense",
		"us-gaap_OtherNonoperatingIncomeExpense",
		"us-gaap_OtherOperatingIncomeExpenseNet",
		"us-gaap_OtherIncome",
		"us-gaap_OtherNonoperatingIncome",
	},
	"Income Before Tax": {
		"us-gaap_IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItemsNoncontrollingInterest",
		"us-gaap_IncomeLossFromContinuingOperationsBeforeIncomeTaxesMinorityInterestAndIncomeLossFromEquityMethodInvestments",
		"us-gaap_IncomeLossFromContinuingOperationsBeforeIncomeTaxesDomestic",
		"us-gaap_IncomeLossFromContinuingOperationsBeforeIncomeTaxesForeign",
	},
	"Income Tax Expense": {
		"us-gaap_IncomeTaxExpenseBenefit",
		"us-gaap_IncomeTaxExpenseBenefitContinuingOperations",
		"us-gaap_CurrentIncomeTaxExpenseBenefit",
	},
	"Net Income": {
		"us-gaap_NetIncomeLoss",
		"us-gaap_ProfitLoss",
		"us-gaap_NetIncomeLossAvailableToCommonStockholdersBasic",
		"us-gaap_NetIncomeLossAvailableToCommonStockholdersDiluted",
	},
	"EPS (Basic)": {
		"us-gaap_EarningsPerShareBasic",
	},
	"EPS (Diluted)": {
		"us-gaap_EarningsPerShareDiluted",
	},
	"Shares Outstanding (Basic)": {
		"us-gaap_WeightedAverageNumberOfSharesOutstandingBasic",
		"us-gaap_CommonStockSharesOutstanding",
	},
	"Shares Outstanding (Diluted)": {
		"us-gaap_WeightedAverageNumberOfDilutedSharesOutstanding",
	},
	"EBITDA": {
		"us-gaap_EarningsBeforeInterestTaxesDepreciationAndAmortization",
	},

	// =========================================================================
	// BALANCE SHEET - Assets
	// =========================================================================
	"Cash & Equivalents": {
		"us-gaap_CashAndCashEquivalentsAtCarryingValue",
		"us-gaap_CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents",
		"us-gaap_Cash",
	},
	"Short-term Investments": {
		"us-gaap_ShortTermInvestments",
		"us-gaap_MarketableSecuritiesCurrent",
		"us-gaap_AvailableForSaleSecuritiesDebtSecuritiesCurrent",
		"us-gaap_HeldToMaturitySecuritiesCurrent",
		"us-gaap_TradingSecuritiesCurrent",
	},
	"Cash & Short-term Investments": {
		"us-gaap_CashCashEquivalentsAndShortTermInvestments",
	},
	"Accounts Receivable": {
		"us-gaap_AccountsReceivableNetCurrent",
		"us-gaap_AccountsReceivableNet",
		"us-gaap_ReceivablesNetCurrent",
		"us-gaap_TradeAndOtherReceivablesNetCurrent",
	},
	"Inventory": {
		"us-gaap_InventoryNet",
		"us-gaap_InventoryFinishedGoods",
		"us-gaap_InventoryGross",
	},
	"Total Current Assets": {
		"us-gaap_AssetsCurrent",
	},
	"Property, Plant & Equipment": {
		"us-gaap_PropertyPlantAndEquipmentNet",
		"us-gaap_PropertyPlantAndEquipmentAndFinanceLeaseRightOfUseAssetAfterAccumulatedDepreciationAndAmortization",
		"us-gaap_PropertyPlantAndEquipmentGross",
	},
	"Goodwill": {
		"us-gaap_Goodwill",
	},
	"Intangible Assets": {
		"us-gaap_IntangibleAssetsNetExcludingGoodwill",
		"us-gaap_IntangibleAssetsNetIncludingGoodwill",
		"us-gaap_FiniteLivedIntangibleAssetsNet",
	},
	"Long-term Investments": {
		"us-gaap_LongTermInvestments",
		"us-gaap_OtherLongTermInvestments",
		"us-gaap_AvailableForSaleSecuritiesDebtSecuritiesNoncurrent",
		"us-gaap_MarketableSecuritiesNoncurrent",
	},
	"Total Assets": {
		"us-gaap_Assets",
	},

	// =========================================================================
	// BALANCE SHEET - Liabilities & Equity
	// =========================================================================
	"Accounts Payable": {
		"us-gaap_AccountsPayableCurrent",
		"us-gaap_AccountsPayableAndAccruedLiabilitiesCurrent",
		"us-gaap_AccountsPayableTradeCurrent",
	},
	"Short-term Debt": {
		"us-gaap_DebtCurrent",
		"us-gaap_ShortTermBorrowings",
		"us-gaap_CommercialPaper",
		"us-gaap_ShortTermDebt",
		"us-gaap_LongTermDebtCurrent",
		"us-gaap_NotesPayableCurrent",
	},
	"Deferred Revenue": {
		"us-gaap_ContractWithCustomerLiabilityCurrent",
		"us-gaap_DeferredRevenueCurrent",
		"us-gaap_DeferredRevenueCurrentAndNoncurrent",
	},
	"Total Current Liabilities": {
		"us-gaap_LiabilitiesCurrent",
	},
	"Long-term Debt": {
		"us-gaap_LongTermDebtNoncurrent",
		"us-gaap_LongTermDebt",
		"us-gaap_LongTermDebtAndCapitalLeaseObligations",
		"us-gaap_LongTermDebtAndCapitalLeaseObligationsIncludingCurrentMaturities",
		"us-gaap_ConvertibleDebtNoncurrent",
		"us-gaap_SeniorLongTermNotes",
		"us-gaap_UnsecuredLongTermDebt",
	},
	"Total Liabilities": {
		"us-gaap_Liabilities",
		"us-gaap_LiabilitiesAndStockholdersEquity",
	},
	"Total Equity": {
		"us-gaap_StockholdersEquity",
		"us-gaap_StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
	},
	"Retained Earnings": {
		"us-gaap_RetainedEarningsAccumulatedDeficit",
		"us-gaap_RetainedEarningsUnappropriated",
	},

	// =========================================================================
	// CASH FLOW STATEMENT
	// =========================================================================
	"Operating Cash Flow": {
		"us-gaap_NetCashProvidedByUsedInOperatingActivities",
		"us-gaap_NetCashProvidedByUsedInOperatingActivitiesContinuingOperations",
	},
	"Capital Expenditures": {
		"us-gaap_PaymentsToAcquirePropertyPlantAndEquipment",
		"us-gaap_PaymentsToAcquireProductiveAssets",
		"us-gaap_PaymentsForCapitalImprovements",
		"us-gaap_CapitalExpendituresIncurredButNotYetPaid",
	},
	"Investing Cash Flow": {
		"us-gaap_NetCashProvidedByUsedInInvestingActivities",
		"us-gaap_NetCashProvidedByUsedInInvestingActivitiesContinuingOperations",
	},
	"Financing Cash Flow": {
		"us-gaap_NetCashProvidedByUsedInFinancingActivities",
		"us-gaap_NetCashProvidedByUsedInFinancingActivitiesContinuingOperations",
	},
	"Depreciation & Amortization": {
		"us-gaap_DepreciationDepletionAndAmortization",
		"us-gaap_DepreciationAndAmortization",
		"us-gaap_Depreciation",
		"us-gaap_DepreciationAmortizationAndAccretionNet",
	},
	"Stock-based Compensation": {
		"us-gaap_ShareBasedCompensation",
		"us-gaap_AllocatedShareBasedCompensationExpense",
	},
	"Dividends Paid": {
		"us-gaap_PaymentsOfDividends",
		"us-gaap_PaymentsOfDividendsCommonStock",
		"us-gaap_PaymentsOfDividendsPreferredStockAndPreferenceStock",
		"us-gaap_PaymentsOfOrdinaryDividends",
	},
	"Stock Repurchases": {
		"us-gaap_PaymentsForRepurchaseOfCommonStock",
		"us-gaap_PaymentsForRepurchaseOfEquity",
		"us-gaap_PaymentsForRepurchaseOfOtherEquity",
	},
	"Debt Issuance": {
		"us-gaap_ProceedsFromIssuanceOfDebt",
		"us-gaap_ProceedsFromIssuanceOfLongTermDebt",
		"us-gaap_ProceedsFromDebtNetOfIssuanceCosts",
		"us-gaap_ProceedsFromIssuanceOfSeniorLongTermDebt",
		"us-gaap_ProceedsFromIssuanceOfCommonStock",
	},
	"Debt Repayment": {
		"us-gaap_RepaymentsOfDebt",
		"us-gaap_RepaymentsOfLongTermDebt",
		"us-gaap_RepaymentsOfLongTermDebtAndCapitalSecurities",
		"us-gaap_RepaymentsOfConvertibleDebt",
		"us-gaap_RepaymentsOfDebtAndCapitalLeaseObligations",
		"us-gaap_RepaymentsOfSeniorDebt",
	},
	"Net Change in Cash": {
		"us-gaap_CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalentsPeriodIncreaseDecreaseIncludingExchangeRateEffect",
		"us-gaap_CashAndCashEquivalentsPeriodIncreaseDecrease",
		"us-gaap_CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalentsPeriodIncreaseDecreaseExcludingExchangeRateEffect",
	},
	"Interest Paid": {
		"us-gaap_InterestPaidNet",
		"us-gaap_InterestPaid",
	},
	"Income Taxes Paid": {
		"us-gaap_IncomeTaxesPaidNet",
		"us-gaap_IncomeTaxesPaid",
	},
}

// conceptToLabel is the reverse index for O(1) exact lookup.
var conceptToLabel = func() map[string]string {
	m := make(map[string]string)
	for label, concepts := range standardConceptMap {
		for _, c := range concepts {
			m[c] = label
		}
	}
	return m
}()
