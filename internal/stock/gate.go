package stock

// Reason explains why an add-to-cart attempt was refused.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonOutOfStock      Reason = "out_of_stock"
	ReasonSizeNotSelected Reason = "size_not_selected"
	ReasonSizeOutOfStock  Reason = "size_out_of_stock"
)

// Message is the notification text shown to the shopper.
func (r Reason) Message() string {
	switch r {
	case ReasonOutOfStock:
		return "Produto esgotado."
	case ReasonSizeNotSelected:
		return "Por favor, selecione um tamanho antes de adicionar ao carrinho."
	case ReasonSizeOutOfStock:
		return "O tamanho selecionado não está disponível."
	}
	return ""
}

const (
	LabelAddToCart   = "Adicionar ao Carrinho"
	LabelSoldOut     = "Esgotado"
	LabelPickSize    = "Selecione um tamanho"
	LabelUnavailable = "Tamanho indisponível"
)

// Decision is the outcome of the availability gate. Quantity is the requested
// quantity clamped to [1, MaxQuantity]; it is 0 when the attempt is refused.
type Decision struct {
	Allowed     bool   `json:"allowed"`
	Reason      Reason `json:"reason,omitempty"`
	Message     string `json:"message,omitempty"`
	MaxQuantity int    `json:"maxQuantity"`
	Quantity    int    `json:"quantity"`
	ButtonLabel string `json:"buttonLabel"`
}

// CanAddToCart decides whether selectedSize/selectedQuantity may be added given
// the normalized sizes of a product.
func CanAddToCart(sizes []SizeStock, selectedSize string, selectedQuantity int) Decision {
	if len(sizes) == 0 {
		return refuse(ReasonOutOfStock, LabelSoldOut)
	}
	if selectedSize == "" {
		return refuse(ReasonSizeNotSelected, LabelPickSize)
	}
	available := QuantityOf(sizes, selectedSize)
	if available <= 0 {
		return refuse(ReasonSizeOutOfStock, LabelUnavailable)
	}
	return Decision{
		Allowed:     true,
		MaxQuantity: available,
		Quantity:    Clamp(selectedQuantity, available),
		ButtonLabel: LabelAddToCart,
	}
}

func refuse(reason Reason, label string) Decision {
	return Decision{Reason: reason, Message: reason.Message(), ButtonLabel: label}
}

// QuantityOf returns the units on hand for size, 0 when the size is absent.
func QuantityOf(sizes []SizeStock, size string) int {
	for _, s := range sizes {
		if s.Size == size {
			return s.Quantity
		}
	}
	return 0
}

// Clamp bounds qty to [1, max]. A non-positive max yields 0.
func Clamp(qty, max int) int {
	if max <= 0 {
		return 0
	}
	if qty < 1 {
		return 1
	}
	if qty > max {
		return max
	}
	return qty
}

// Increment is the stepper's "+": a no-op once max is reached.
func Increment(qty, max int) int {
	if qty >= max {
		return qty
	}
	return qty + 1
}

// Decrement is the stepper's "-": a no-op at 1.
func Decrement(qty int) int {
	if qty <= 1 {
		return qty
	}
	return qty - 1
}

// State is the availability of a product as a whole.
type State string

const (
	StateInStock    State = "in_stock"
	StateOutOfStock State = "out_of_stock"
)

// previewSizes is how many size badges a product card shows before "+N".
const previewSizes = 3

// Availability is the single availability view shared by product cards and the
// detail page.
type Availability struct {
	State      State       `json:"state"`
	Sizes      []SizeStock `json:"sizes"`
	TotalUnits int         `json:"totalUnits"`
	Preview    []string    `json:"preview"`
	MoreSizes  int         `json:"moreSizes"`
}

func AvailabilityOf(sizes []SizeStock) Availability {
	a := Availability{State: StateOutOfStock, Sizes: sizes, Preview: make([]string, 0, previewSizes)}
	if a.Sizes == nil {
		a.Sizes = []SizeStock{}
	}
	for i, s := range sizes {
		a.TotalUnits += s.Quantity
		if i < previewSizes {
			a.Preview = append(a.Preview, s.Size)
		}
	}
	if len(sizes) > 0 {
		a.State = StateInStock
	}
	if len(sizes) > previewSizes {
		a.MoreSizes = len(sizes) - previewSizes
	}
	return a
}
