package mail

// RenderedEmail: saída determinística dos templates
type RenderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

// TemplateData: entrada dos templates de confirmação
type TemplateData struct {
	Name          string
	Company       string
	Service       string
	Message       string
	PreferredDate string
	PreferredTime string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
