package kiosk

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/claudiojas/rockbandpay-table-client/models"
	"github.com/claudiojas/rockbandpay-table-client/utils"
)

var (
	headerColor  = color.New(color.FgYellow, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgRed)

	statusColors = map[string]*color.Color{
		models.OrderPending:   color.New(color.FgYellow),
		models.OrderPreparing: color.New(color.FgBlue),
		models.OrderReady:     color.New(color.FgGreen),
		models.OrderDelivered: color.New(color.FgGreen, color.Bold),
		models.OrderCancelled: color.New(color.FgRed),
	}

	statusLabels = map[string]string{
		models.OrderPending:   "Pendente",
		models.OrderPreparing: "Em Preparo",
		models.OrderReady:     "Pronto",
		models.OrderDelivered: "Entregue",
		models.OrderCancelled: "Cancelado",
	}
)

func (a *App) renderHeader(tableID string) {
	headerColor.Fprintln(a.out, "Cardápio RockBandPay")
	fmt.Fprintf(a.out, "Mesa: %s\n\n", tableID)
}

func (a *App) renderMenu() {
	if len(a.catalog.Products) == 0 {
		a.warn("Falha ao carregar o cardápio.")
		return
	}

	a.numbered = a.numbered[:0]
	n := 0
	for _, cat := range a.catalog.Categories {
		headerColor.Fprintf(a.out, "%s\n", cat.Name)
		for _, p := range a.catalog.ProductsByCategory(cat.ID) {
			n++
			a.numbered = append(a.numbered, p)
			if p.SoldOut() {
				fmt.Fprintf(a.out, "  %2d. %-30s %s\n", n, p.Name, warnColor.Sprint("Esgotado"))
				continue
			}
			fmt.Fprintf(a.out, "  %2d. %-30s R$ %s\n", n, p.Name, utils.FormatCurrency(p.Price))
		}
	}
	fmt.Fprintln(a.out)
}

func (a *App) renderCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		// an empty cart renders nothing
		return
	}
	headerColor.Fprintln(a.out, "Meu Pedido")
	for _, item := range items {
		fmt.Fprintf(a.out, "  %dx %-28s R$ %s\n", item.Quantity, item.Product.Name, utils.FormatCurrency(item.Subtotal()))
	}
	fmt.Fprintf(a.out, "  Total: R$ %s\n", utils.FormatCurrency(a.cart.Total()))
}

func (a *App) renderOrders(list []models.Order) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "Você ainda não fez nenhum pedido.")
		return
	}
	headerColor.Fprintln(a.out, "Meus Pedidos")
	for i, o := range list {
		fmt.Fprintf(a.out, "  %d. %s  %s  R$ %s\n",
			i+1, o.CreatedAt.Format("15:04:05"), a.statusText(o.Status), utils.FormatCurrency(o.TotalAmount))
		for _, item := range o.OrderItems {
			fmt.Fprintf(a.out, "       %dx %-26s R$ %s\n", item.Quantity, item.Product.Name, utils.FormatCurrency(item.TotalPrice))
		}
	}
}

// renderOrderTicker prints a one-line notice when the order list changes
// underneath the prompt.
func (a *App) renderOrderTicker(list []models.Order) {
	if len(list) == 0 {
		return
	}
	latest := list[0]
	fmt.Fprintf(a.out, "\n[pedidos] %s -> %s\n", latest.CreatedAt.Format("15:04:05"), a.statusText(latest.Status))
}

func (a *App) renderHelp() {
	fmt.Fprintln(a.out, "commands: menu · orders · cart · add <n> [qty] · remove <n> · order · cancel <n> · quit")
}

func (a *App) statusText(status string) string {
	label, ok := statusLabels[status]
	if !ok {
		return status
	}
	if c, ok := statusColors[status]; ok {
		return c.Sprint(label)
	}
	return label
}

func (a *App) prompt() {
	fmt.Fprint(a.out, "> ")
}

func (a *App) warn(msg string) {
	warnColor.Fprintln(a.out, msg)
}

func (a *App) success(msg string) {
	successColor.Fprintln(a.out, msg)
}
