package ledger

import "github.com/pigeonworks-llc/gnucash-lite/internal/models"

// ChartAccount is an account of a chart template. Accounts with children
// are created as placeholders.
type ChartAccount struct {
	Name     string
	Code     string
	Children []ChartAccount
}

// ChartRoot is the top account of one type in a chart template.
type ChartRoot struct {
	AccountType models.AccountType
	ChartAccount
}

// DefaultChart returns the demo chart of accounts.
func DefaultChart() []ChartRoot {
	return []ChartRoot{
		{models.AccountTypeAsset, ChartAccount{Name: "资产", Children: []ChartAccount{
			{Name: "流动资产", Children: []ChartAccount{
				{Name: "库存现金", Code: "1001"},
				{Name: "银行存款", Code: "1002"},
				{Name: "应收账款", Code: "1122"},
				{Name: "库存商品", Code: "1405"},
			}},
			{Name: "非流动资产", Children: []ChartAccount{
				{Name: "固定资产", Code: "1601"},
				{Name: "累计折旧", Code: "1602"},
			}},
		}}},
		{models.AccountTypeLiability, ChartAccount{Name: "负债", Children: []ChartAccount{
			{Name: "流动负债", Children: []ChartAccount{
				{Name: "短期借款", Code: "2001"},
				{Name: "应付账款", Code: "2202"},
				{Name: "应付职工薪酬", Code: "2211"},
				{Name: "应交税费", Code: "2221"},
			}},
			{Name: "非流动负债", Children: []ChartAccount{
				{Name: "长期借款", Code: "2501"},
			}},
		}}},
		{models.AccountTypeEquity, ChartAccount{Name: "所有者权益", Children: []ChartAccount{
			{Name: "实收资本", Code: "4001"},
			{Name: "资本公积", Code: "4002"},
			{Name: "盈余公积", Code: "4101"},
			{Name: "本年利润", Code: "4103"},
			{Name: "利润分配", Code: "4104"},
		}}},
		{models.AccountTypeIncome, ChartAccount{Name: "收入", Children: []ChartAccount{
			{Name: "主营业务收入", Code: "6001"},
			{Name: "其他业务收入", Code: "6051"},
			{Name: "营业外收入", Code: "6301"},
		}}},
		{models.AccountTypeExpense, ChartAccount{Name: "费用", Children: []ChartAccount{
			{Name: "营业成本", Children: []ChartAccount{
				{Name: "主营业务成本", Code: "6401"},
				{Name: "其他业务成本", Code: "6402"},
			}},
			{Name: "期间费用", Children: []ChartAccount{
				{Name: "销售费用", Code: "6601"},
				{Name: "管理费用", Code: "6602"},
				{Name: "财务费用", Code: "6603"},
			}},
			{Name: "营业外支出", Code: "6711"},
			{Name: "所得税费用", Code: "6801"},
		}}},
	}
}

// Request returns the create request for a chart account of type t under
// parent.
func (c ChartAccount) Request(t models.AccountType, parent *string) models.CreateAccountRequest {
	req := models.CreateAccountRequest{
		Name:        c.Name,
		AccountType: t,
		ParentGUID:  parent,
		Placeholder: len(c.Children) > 0,
	}
	if c.Code != "" {
		code := c.Code
		req.Code = &code
	}
	return req
}

// WalkChart creates every account of chart through create, parents first,
// and returns the number of accounts created.
func WalkChart(chart []ChartRoot, create func(models.CreateAccountRequest) (string, error)) (int, error) {
	count := 0
	var walk func(t models.AccountType, c ChartAccount, parent *string) error
	walk = func(t models.AccountType, c ChartAccount, parent *string) error {
		guid, err := create(c.Request(t, parent))
		if err != nil {
			return err
		}
		count++
		for _, child := range c.Children {
			if err := walk(t, child, &guid); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range chart {
		if err := walk(root.AccountType, root.ChartAccount, nil); err != nil {
			return count, err
		}
	}
	return count, nil
}

// Seed creates chart in an empty ledger. It returns zero without creating
// anything when accounts already exist.
func (s *Service) Seed(chart []ChartRoot) (int, error) {
	accounts, err := s.store.ListAccounts()
	if err != nil {
		return 0, err
	}
	if len(accounts) > 0 {
		return 0, nil
	}
	return WalkChart(chart, func(req models.CreateAccountRequest) (string, error) {
		account, err := s.CreateAccount(req)
		if err != nil {
			return "", err
		}
		return account.GUID, nil
	})
}
