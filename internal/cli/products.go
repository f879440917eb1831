package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newProductsCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "products [query]",
		Short: "List products, favorites first",
		Long:  "Lists products whose name contains query, ignoring case. Without a query every product is listed.",
		Args:  cobra.ArbitraryArgs,
		RunE: withApp(open, func(cmd *cobra.Command, args []string, a *app) error {
			ctx := cmd.Context()
			products, err := a.index.List(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			t := newTable("Products", "ID", "", "Name", "Price")
			for _, p := range products {
				star := ""
				if p.IsFavorite {
					star = "*"
				}
				t.addRow(strconv.FormatInt(p.ID, 10), star, p.Name, money(p.Price))
			}
			fmt.Fprint(cmd.OutOrStdout(), t.render(a.styles(ctx, cmd)))
			return nil
		}),
	}
}

func newAddProductCmd(open opener) *cobra.Command {
	var favorite bool

	cmd := &cobra.Command{
		Use:   "add-product <name> <price>",
		Short: "Add a product",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(open, func(cmd *cobra.Command, args []string, a *app) error {
			price, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[1], err)
			}
			product, err := a.products.AddProduct(cmd.Context(), args[0], price, favorite)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (id %d)\n", product.Name, product.ID)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&favorite, "favorite", "f", false, "mark the product as a favorite")
	return cmd
}

func newAddRecordCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "add-record <product-id> <quantity>",
		Short: "Log production of a product at its current price",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(open, func(cmd *cobra.Command, args []string, a *app) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q: %w", args[0], err)
			}
			quantity, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}
			record, err := a.records.AddRecord(cmd.Context(), id, quantity)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s x %s = %s\n",
				record.Quantity, record.ProductName, money(record.Amount))
			return nil
		}),
	}
}

func newSeedCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the sample products if there are no products yet",
		Args:  cobra.NoArgs,
		RunE: withApp(open, func(cmd *cobra.Command, _ []string, a *app) error {
			added, err := a.products.EnsureSampleProducts(cmd.Context(), a.cfg.SampleProducts)
			if err != nil {
				return err
			}
			if added == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Products already exist, nothing added")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d sample products\n", added)
			return nil
		}),
	}
}
