package trail

type Stats struct {
	Hunger       int `json:"hunger"`
	Style        int `json:"style"`
	Irony        int `json:"irony"`
	Authenticity int `json:"authenticity"`
}

type Resources struct {
	Vinyls     int     `json:"vinyls"`
	Coffee     int     `json:"coffee"`
	BikeHealth int     `json:"bikeHealth"`
	Badges     []Badge `json:"badges"`
}

type PlayerState struct {
	Name      string                `json:"name"`
	Job       string                `json:"job"`
	Avatar    string                `json:"avatar"`
	Bio       string                `json:"bio"`
	Stats     Stats                 `json:"stats"`
	Resources Resources             `json:"resources"`
	Location  string                `json:"location"`
	Progress  int                   `json:"progress"`
	Inventory []LootItem            `json:"inventory,omitempty"`
	Equipment map[ItemSlot]LootItem `json:"equipment,omitempty"`
}

type Badge struct {
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	ImagePrompt string `json:"imagePrompt,omitempty"`
	Image       string `json:"image,omitempty"`
	Uber        bool   `json:"uber,omitempty"`
}

type ChoiceID string

const (
	ChoiceEmbrace    ChoiceID = "embrace"
	ChoicePlayItSafe ChoiceID = "play_it_safe"
)

type Consequences struct {
	Hunger       int `json:"hunger"`
	Style        int `json:"style"`
	Irony        int `json:"irony"`
	Authenticity int `json:"authenticity"`
	Vinyls       int `json:"vinyls"`
	Coffee       int `json:"coffee"`
	BikeHealth   int `json:"bikeHealth"`
	Progress     int `json:"progress"`
}

type Choice struct {
	ID           ChoiceID     `json:"id"`
	Text         string       `json:"text"`
	Consequences Consequences `json:"consequences"`
	Badge        *Badge       `json:"badge,omitempty"`
}

type Scenario struct {
	ID               string   `json:"id"`
	Description      string   `json:"description"`
	Challenge        string   `json:"challenge"`
	Reward           string   `json:"reward"`
	Flavor           string   `json:"flavor,omitempty"`
	SceneImagePrompt string   `json:"sceneImagePrompt"`
	SceneImage       string   `json:"sceneImage,omitempty"`
	Badge            *Badge   `json:"badge,omitempty"`
	Choices          []Choice `json:"choices"`
}

// DataSource tags which tier produced a generated value.
type DataSource string

const (
	SourcePrimary   DataSource = "primary"
	SourceFallback  DataSource = "fallback"
	SourceHardcoded DataSource = "hardcoded"
)

type GameStatus string

const (
	StatusPlaying GameStatus = "playing"
	StatusWon     GameStatus = "won"
	StatusLost    GameStatus = "lost"
)
