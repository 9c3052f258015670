package service

import (
	"fmt"
	"strings"

	"github.com/hashhost/billing/internal/constants"
	"github.com/hashhost/billing/internal/models"

	"github.com/shopspring/decimal"
)

var cryptoDiscountPercent = decimal.NewFromInt(5)

// DefaultPaymentMethods 账单页支持的支付方式
func DefaultPaymentMethods() []models.PaymentMethod {
	return []models.PaymentMethod{
		discounted(constants.PaymentMethodBitcoin, "Bitcoin"),
		discounted(constants.PaymentMethodLightning, "Lightning Network"),
		discounted(constants.PaymentMethodUSDT, "USDT"),
		manual(constants.PaymentMethodApplePay, "Apple Pay"),
		manual(constants.PaymentMethodGooglePay, "Google Pay"),
		manual(constants.PaymentMethodCashApp, "Cash App"),
		manual(constants.PaymentMethodWire, "Wire Transfer"),
		manual(constants.PaymentMethodACH, "ACH Transfer"),
		{
			ID:       constants.PaymentMethodCreditCard,
			Name:     "Credit Card",
			Category: constants.PaymentMethodCategoryRecurring,
		},
	}
}

func manual(id, name string) models.PaymentMethod {
	return models.PaymentMethod{ID: id, Name: name, Category: constants.PaymentMethodCategoryManual}
}

func discounted(id, name string) models.PaymentMethod {
	method := manual(id, name)
	percent := cryptoDiscountPercent
	method.DiscountPercent = &percent
	return method
}

// PaymentMethodCatalog 只读支付方式目录
type PaymentMethodCatalog struct {
	methods []models.PaymentMethod
	index   map[string]int
}

// PaymentMethodGroups 按分类分组的目录视图
type PaymentMethodGroups struct {
	Manual         []models.PaymentMethod `json:"manual"`
	Recurring      []models.PaymentMethod `json:"recurring"`
	DiscountNotice string                 `json:"discount_notice,omitempty"`
}

// NewPaymentMethodCatalog 创建默认目录
func NewPaymentMethodCatalog() *PaymentMethodCatalog {
	catalog, err := NewPaymentMethodCatalogFrom(DefaultPaymentMethods())
	if err != nil {
		panic(err)
	}
	return catalog
}

// NewPaymentMethodCatalogFrom 使用给定条目创建目录
func NewPaymentMethodCatalogFrom(methods []models.PaymentMethod) (*PaymentMethodCatalog, error) {
	catalog := &PaymentMethodCatalog{
		methods: make([]models.PaymentMethod, 0, len(methods)),
		index:   make(map[string]int, len(methods)),
	}
	for _, method := range methods {
		if _, exists := catalog.index[method.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrPaymentMethodDuplicate, method.ID)
		}
		catalog.index[method.ID] = len(catalog.methods)
		catalog.methods = append(catalog.methods, method)
	}
	return catalog, nil
}

// List 按展示顺序返回全部支付方式
func (c *PaymentMethodCatalog) List() []models.PaymentMethod {
	out := make([]models.PaymentMethod, len(c.methods))
	copy(out, c.methods)
	return out
}

// ByID 按标识查找
func (c *PaymentMethodCatalog) ByID(id string) (models.PaymentMethod, bool) {
	idx, ok := c.index[strings.TrimSpace(id)]
	if !ok {
		return models.PaymentMethod{}, false
	}
	return c.methods[idx], true
}

// ByCategory 按分类筛选
func (c *PaymentMethodCatalog) ByCategory(category string) []models.PaymentMethod {
	out := make([]models.PaymentMethod, 0)
	for _, method := range c.methods {
		if method.Category == category {
			out = append(out, method)
		}
	}
	return out
}

// DiscountMethods 带折扣的支付方式
func (c *PaymentMethodCatalog) DiscountMethods() []models.PaymentMethod {
	out := make([]models.PaymentMethod, 0)
	for _, method := range c.methods {
		if method.HasDiscount() {
			out = append(out, method)
		}
	}
	return out
}

// DefaultRecurring 第一个自动扣款方式
func (c *PaymentMethodCatalog) DefaultRecurring() (models.PaymentMethod, bool) {
	for _, method := range c.methods {
		if method.Category == constants.PaymentMethodCategoryRecurring {
			return method, true
		}
	}
	return models.PaymentMethod{}, false
}

// Groups 返回分组目录与折扣提示
func (c *PaymentMethodCatalog) Groups() PaymentMethodGroups {
	return PaymentMethodGroups{
		Manual:         c.ByCategory(constants.PaymentMethodCategoryManual),
		Recurring:      c.ByCategory(constants.PaymentMethodCategoryRecurring),
		DiscountNotice: c.discountNotice(),
	}
}

func (c *PaymentMethodCatalog) discountNotice() string {
	methods := c.DiscountMethods()
	if len(methods) == 0 {
		return ""
	}
	names := make([]string, 0, len(methods))
	for _, method := range methods {
		names = append(names, method.Name)
	}
	return fmt.Sprintf("Save %s%% on service fees when paying with %s.",
		methods[0].DiscountPercent.String(), strings.Join(names, ", "))
}
