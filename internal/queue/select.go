package queue

import "github.com/duskthistle/swipereel/internal/models"

// IntentKind enumerates what the view layer should render next.
type IntentKind int

const (
	ShowUploader       IntentKind = iota // queue empty, nothing to review
	ShowExhausted                        // cursor ran off the end of a non-empty queue
	ShowReviewCard                       // current video card
	ShowCategoryPicker                   // current video awaits a category and the picker is open
)

func (k IntentKind) String() string {
	switch k {
	case ShowUploader:
		return "uploader"
	case ShowExhausted:
		return "exhausted"
	case ShowReviewCard:
		return "review_card"
	case ShowCategoryPicker:
		return "category_picker"
	default:
		return ""
	}
}

// ViewIntent is the selector's verdict on what to render. Video is populated
// for card and picker intents.
type ViewIntent struct {
	Kind  IntentKind
	Video models.Video
}

// Select maps queue state to a view intent. It reads the queue and nothing
// else, so the same state always yields the same intent.
func Select(q *ReviewQueue, pickerOpen bool) ViewIntent {
	if q.Len() == 0 {
		return ViewIntent{Kind: ShowUploader}
	}
	current, ok := q.Current()
	if !ok {
		return ViewIntent{Kind: ShowExhausted}
	}
	if pickerOpen && current.State == models.StateAwaitingCategory {
		return ViewIntent{Kind: ShowCategoryPicker, Video: current}
	}
	return ViewIntent{Kind: ShowReviewCard, Video: current}
}
