package entity

// SimpleFormData is the input and expectation for the Simple Form Demo.
type SimpleFormData struct {
	Message        string
	ExpectedOutput string
}

// SliderData selects a slider, where to drag it, and the accepted deviation.
type SliderData struct {
	SliderIndex int
	TargetValue int
	Tolerance   int
}

// FormRecord is one complete submission for the Input Form Submit page.
type FormRecord struct {
	Name     string
	Email    string
	Password string
	Company  string
	Website  string
	Country  string
	City     string
	Address1 string
	Address2 string
	State    string
	Zip      string
}

// URLs are paths relative to the configured base URL.
type URLs struct {
	Playground      string
	SimpleForm      string
	DragDropSliders string
	InputForm       string
}

var DefaultURLs = URLs{
	Playground:      "/selenium-playground",
	SimpleForm:      "/simple-form-demo",
	DragDropSliders: "/drag-drop-range-sliders-demo",
	InputForm:       "/input-form-demo",
}

var DefaultSimpleForm = SimpleFormData{
	Message:        "Welcome to LambdaTest",
	ExpectedOutput: "Welcome to LambdaTest",
}

var DefaultSlider = SliderData{
	SliderIndex: 2,
	TargetValue: 95,
	Tolerance:   3,
}

var DefaultFormRecord = FormRecord{
	Name:     "Test User",
	Email:    "test@example.com",
	Password: "Password123",
	Company:  "Test Company",
	Website:  "https://example.com",
	Country:  "United States",
	City:     "New York",
	Address1: "123 Test Street",
	Address2: "Apt 456",
	State:    "NY",
	Zip:      "10001",
}

const DefaultSuccessMessage = "Thanks for contacting us"
