package kiosk

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/claudiojas/rockbandpay-table-client/cart"
	"github.com/claudiojas/rockbandpay-table-client/client"
	"github.com/claudiojas/rockbandpay-table-client/config"
	"github.com/claudiojas/rockbandpay-table-client/menu"
	"github.com/claudiojas/rockbandpay-table-client/models"
	"github.com/claudiojas/rockbandpay-table-client/orders"
	"github.com/claudiojas/rockbandpay-table-client/push"
	"github.com/claudiojas/rockbandpay-table-client/session"
	"github.com/claudiojas/rockbandpay-table-client/utils"
)

// App is the table-side kiosk: one session, one menu snapshot, one cart and
// one live order list, driven by a small command loop.
type App struct {
	cfg   config.Config
	api   *client.Client
	store session.Store

	in  io.Reader
	out io.Writer

	session models.Session
	catalog menu.Catalog
	cart    *cart.Cart
	sync    *orders.Synchronizer
	channel *push.Channel

	// display index -> product, rebuilt on every menu render
	numbered []models.Product
}

func New(cfg config.Config, api *client.Client, store session.Store, in io.Reader, out io.Writer) *App {
	return &App{
		cfg:   cfg,
		api:   api,
		store: store,
		in:    in,
		out:   out,
		cart:  cart.New(),
	}
}

// Run resolves the session, loads the menu, opens the push channel and then
// serves the command loop until ctx is done or stdin closes. The errors it
// returns are the fatal, page-level ones.
func (a *App) Run(ctx context.Context) error {
	tableID, err := a.cfg.TableID()
	if err != nil {
		return err
	}

	resolver := session.NewResolver(a.api, a.store)
	sess, err := resolver.Resolve(ctx, tableID)
	if err != nil {
		return err
	}
	a.session = sess
	utils.InfoLogger.Printf("Session %s active for table %s", sess.ID, tableID)

	catalog, err := menu.Load(ctx, a.api)
	if err != nil {
		// The menu area shows an error; orders still work.
		utils.ErrorLogger.Printf("failed to load the menu: %v", err)
	} else {
		a.catalog = catalog
	}

	a.sync = orders.New(a.api, sess.ID)
	a.sync.OnChange = func(list []models.Order) {
		a.renderOrderTicker(list)
	}
	if err := a.sync.Refresh(ctx); err != nil {
		utils.ErrorLogger.Printf("failed to fetch existing orders: %v", err)
	}

	a.channel = push.Open(a.cfg.WSBaseURL+"/ws/session/"+sess.ID, func(ev push.Event) {
		a.sync.HandleEvent(ctx, ev)
	})
	defer a.channel.Close()

	a.renderHeader(tableID)
	a.renderMenu()

	return a.commandLoop(ctx)
}

func (a *App) commandLoop(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	a.prompt()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := a.handleCommand(ctx, strings.Fields(strings.TrimSpace(line))); quit {
				return nil
			}
			a.prompt()
		}
	}
}

func (a *App) handleCommand(ctx context.Context, args []string) (quit bool) {
	if len(args) == 0 {
		return false
	}

	switch args[0] {
	case "menu":
		a.renderMenu()
	case "orders":
		a.renderOrders(a.sync.Orders())
	case "cart":
		a.renderCart()
	case "add":
		a.cmdAdd(args[1:])
	case "remove":
		a.cmdRemove(args[1:])
	case "order":
		a.cmdOrder(ctx)
	case "cancel":
		a.cmdCancel(ctx, args[1:])
	case "quit", "exit":
		return true
	case "help":
		a.renderHelp()
	default:
		fmt.Fprintf(a.out, "unknown command %q, try help\n", args[0])
	}
	return false
}

func (a *App) cmdAdd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "usage: add <item number> [quantity]")
		return
	}
	p, ok := a.productByNumber(args[0])
	if !ok {
		return
	}
	if p.SoldOut() {
		a.warn(fmt.Sprintf("%s is sold out", p.Name))
		return
	}
	qty := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			fmt.Fprintln(a.out, "quantity must be a positive number")
			return
		}
		qty = n
	}
	atCap := a.cart.Add(p, qty)
	fmt.Fprintf(a.out, "added %dx %s\n", qty, p.Name)
	if atCap {
		a.warn(fmt.Sprintf("%s is at its stock limit (%d)", p.Name, p.Stock))
	}
	a.renderCart()
}

func (a *App) cmdRemove(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "usage: remove <item number>")
		return
	}
	p, ok := a.productByNumber(args[0])
	if !ok {
		return
	}
	if a.cart.Remove(p.ID) {
		fmt.Fprintf(a.out, "removed %s\n", p.Name)
	}
	a.renderCart()
}

func (a *App) cmdOrder(ctx context.Context) {
	order, err := a.cart.Submit(ctx, a.api, a.session.ID)
	if errors.Is(err, cart.ErrEmptyCart) {
		fmt.Fprintln(a.out, "your cart is empty")
		return
	}
	if err != nil {
		// Cart stays intact; the user retries manually.
		a.warn(fmt.Sprintf("could not place the order, try again: %v", err))
		return
	}
	a.success("Order sent to the kitchen!")
	a.sync.Apply(order)
}

func (a *App) cmdCancel(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "usage: cancel <order number>")
		return
	}
	n, err := strconv.Atoi(args[0])
	list := a.sync.Orders()
	if err != nil || n < 1 || n > len(list) {
		fmt.Fprintln(a.out, "no such order")
		return
	}
	target := list[n-1]
	if err := a.sync.Cancel(ctx, target.ID); err != nil {
		a.warn(fmt.Sprintf("could not cancel: %v", err))
		return
	}
	fmt.Fprintln(a.out, "cancel requested, waiting for the kitchen to confirm")
}

func (a *App) productByNumber(arg string) (models.Product, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.numbered) {
		fmt.Fprintln(a.out, "no such menu item, run menu to see the numbers")
		return models.Product{}, false
	}
	return a.numbered[n-1], true
}
