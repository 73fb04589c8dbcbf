package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"
)

// ==================== 发票数据结构（派生视图，不落库） ====================

// InvoiceLine 发票明细行
type InvoiceLine struct {
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// InvoiceTotals 发票合计
type InvoiceTotals struct {
	ProductTotal    float64 `json:"product_total"`
	DomesticTotal   float64 `json:"domestic_total"`
	ShippingTotal   float64 `json:"shipping_total"`
	CommissionTotal float64 `json:"commission_total"`
	GrandTotal      float64 `json:"grand_total"`
}

// InvoiceBillTo 发票抬头（取第一个订单挂的客户资料）
type InvoiceBillTo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// InvoiceCompany 开票方信息（来自站点配置）
type InvoiceCompany struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Invoice 发票视图
type Invoice struct {
	InvoiceNo  string         `json:"invoice_no"`
	IsCombined bool           `json:"is_combined"`
	Lines      []InvoiceLine  `json:"lines"`
	Totals     InvoiceTotals  `json:"totals"`
	BillTo     InvoiceBillTo  `json:"bill_to"`
	Company    InvoiceCompany `json:"company"`
	IssuedAt   time.Time      `json:"issued_at"`
}

// ==================== 备注明细行微格式 ====================

// noteLineRe 匹配 "<name>: <qty> pcs × ৳<price>"，价格允许千分位逗号。
// 这是存量数据里约定俗成的文本协议，合法行必须无损解析，非法行静默跳过。
var noteLineRe = regexp.MustCompile(`^(.+?):\s*([\d,]+)\s*pcs\s*×\s*৳\s*([\d,]+(?:\.\d+)?)\s*$`)

// parseAmount 去掉千分位逗号后解析数字，解析失败按 0 处理
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// ==================== InvoiceService 发票聚合器 ====================

// InvoiceService 把一个或多个订单聚合成带明细与合计的发票视图
type InvoiceService struct {
	orderRepo repository.OrderRepository
	settings  *SettingsService
}

// NewInvoiceService 创建发票服务
func NewInvoiceService(orderRepo repository.OrderRepository, settings *SettingsService) *InvoiceService {
	return &InvoiceService{orderRepo: orderRepo, settings: settings}
}

// ParseOrderLines 从订单解析发票明细行。
// 备注里有合法明细行就用备注；一行都解析不出来（或备注为空）时，
// 退回到订单自身字段合成的单行明细。
func (s *InvoiceService) ParseOrderLines(order *model.Order) []InvoiceLine {
	if order.HasItemizedNotes() {
		var lines []InvoiceLine
		for _, raw := range strings.Split(order.Notes, "\n") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			m := noteLineRe.FindStringSubmatch(raw)
			if m == nil {
				continue // 非法行直接丢弃，永不报错
			}
			qty := int(parseAmount(m[2]))
			price := parseAmount(m[3])
			lines = append(lines, InvoiceLine{
				Name:      strings.TrimSpace(m[1]),
				Qty:       qty,
				UnitPrice: price,
				Total:     float64(qty) * price,
			})
		}
		if len(lines) > 0 {
			return lines
		}
	}

	// 合成兜底行
	name := order.ProductName
	if order.VariantName != "" {
		name = fmt.Sprintf("%s (%s)", order.ProductName, order.VariantName)
	}
	return []InvoiceLine{{
		Name:      name,
		Qty:       order.Quantity,
		UnitPrice: order.UnitPrice,
		Total:     order.TotalPrice,
	}}
}

// CalcTotals 跨全部订单汇总四项费用。
// 注意：product_total 累加的是订单的 total_price，与明细行无关。
func (s *InvoiceService) CalcTotals(orders []model.Order) InvoiceTotals {
	var t InvoiceTotals
	for _, o := range orders {
		t.ProductTotal += o.TotalPrice
		t.DomesticTotal += o.DomesticCourierCharge
		t.ShippingTotal += o.ShippingCharges
		t.CommissionTotal += o.Commission
	}
	t.GrandTotal = t.ProductTotal + t.DomesticTotal + t.ShippingTotal + t.CommissionTotal
	return t
}

// BuildInvoice 构建发票视图。
// 多订单时是合并发票，发票号用当前时间派生（发票不是权威账本，碰撞可接受）；
// 单订单直接用订单号。抬头取第一个订单的客户资料，合并发票默认同一客户，不做校验。
func (s *InvoiceService) BuildInvoice(ctx context.Context, orderIDs []int64) (*Invoice, error) {
	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("订单列表为空")
	}

	orders, err := s.orderRepo.GetByIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("查询订单失败: %v", err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("订单不存在")
	}

	return s.buildFromOrders(ctx, orders), nil
}

// BuildInvoiceForUser 同 BuildInvoice，但要求全部订单属于该用户
func (s *InvoiceService) BuildInvoiceForUser(ctx context.Context, orderIDs []int64, userID int64) (*Invoice, error) {
	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("订单列表为空")
	}

	orders, err := s.orderRepo.GetByIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("查询订单失败: %v", err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("订单不存在")
	}
	for _, o := range orders {
		if o.UserID != userID {
			return nil, fmt.Errorf("无权为订单 %s 开票", o.OrderNumber)
		}
	}

	return s.buildFromOrders(ctx, orders), nil
}

func (s *InvoiceService) buildFromOrders(ctx context.Context, orders []model.Order) *Invoice {
	now := time.Now()
	inv := &Invoice{
		IsCombined: len(orders) > 1,
		Totals:     s.CalcTotals(orders),
		IssuedAt:   now,
	}

	if inv.IsCombined {
		inv.InvoiceNo = "INV-" + now.Format("20060102150405")
	} else {
		inv.InvoiceNo = orders[0].OrderNumber
	}

	for i := range orders {
		inv.Lines = append(inv.Lines, s.ParseOrderLines(&orders[i])...)
	}

	if p := orders[0].Profile; p != nil {
		inv.BillTo = InvoiceBillTo{
			Name:    p.FullName,
			Phone:   p.Phone,
			Address: p.Address,
		}
	}

	// 开票方信息走站点配置，配置缺失时有默认值兜底
	cfg := s.settings.Get(ctx)
	inv.Company = InvoiceCompany{
		Name:    cfg[model.SettingKeySiteName],
		Phone:   cfg[model.SettingKeySupportPhone],
		Email:   cfg[model.SettingKeySupportEmail],
		Address: cfg[model.SettingKeyOfficeAddr],
	}

	return inv
}
