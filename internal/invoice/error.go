package invoice

import "errors"

var ErrNotInvoiceable = errors.New("order has no invoice number")
