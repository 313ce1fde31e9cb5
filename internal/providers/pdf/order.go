package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateOrder(ctx context.Context, data OrderDocument) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, "Purchase Order "+data.OrderNumber, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, data.Status, props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	m.AddRow(24,
		col.New(6).Add(
			text.New("Supplier: "+data.SupplierName, props.Text{Top: 0}),
			text.New("Tax ID: "+data.SupplierTaxID, props.Text{Top: 4}),
			text.New("Bank account: "+data.BankAccount, props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New("Issue date: "+data.IssueDate, props.Text{Top: 0}),
			text.New("Due date: "+data.DueDate, props.Text{Top: 4}),
			text.New("Delivery date: "+data.DeliveryDate, props.Text{Top: 8}),
			text.New("Priority: "+data.Priority, props.Text{Top: 12}),
		),
	)

	m.AddRow(8,
		text.NewCol(5, "Product", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Disc %", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Subtotal", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range data.Lines {
		m.AddRow(7,
			text.NewCol(5, line.Product, props.Text{Size: 9}),
			text.NewCol(2, line.Quantity, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, line.Discount, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.Subtotal, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Tax", props.Text{Size: 9}),
		text.NewCol(2, data.Tax, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total "+data.Currency, props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, data.Total, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if len(data.Payments) > 0 {
		m.AddRow(10,
			text.NewCol(12, "Payment history", props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}),
		)
		m.AddRow(8,
			text.NewCol(4, "Number", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(3, "Date", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(2, "Method", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(3, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
		for _, payment := range data.Payments {
			m.AddRow(7,
				text.NewCol(4, payment.Number, props.Text{Size: 9}),
				text.NewCol(3, payment.Date, props.Text{Size: 9}),
				text.NewCol(2, payment.Method, props.Text{Size: 9}),
				text.NewCol(3, payment.Amount, props.Text{Size: 9, Align: align.Right}),
			)
		}
		m.AddRow(8,
			col.New(7),
			text.NewCol(2, "Paid", props.Text{Size: 9}),
			text.NewCol(3, data.PaidAmount, props.Text{Size: 9, Align: align.Right}),
		)
		m.AddRow(8,
			col.New(7),
			text.NewCol(2, "Pending", props.Text{Size: 9}),
			text.NewCol(3, data.Pending, props.Text{Size: 9, Align: align.Right}),
		)
	}

	if data.Notes != "" {
		m.AddRow(16,
			text.NewCol(12, "Notes: "+data.Notes, props.Text{Size: 9, Top: 2}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
