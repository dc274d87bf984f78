package domain

import "time"

// CustomerConfig agrupa la configuracion anidada de un customer.
type CustomerConfig struct {
	Monitor       map[string]any      `json:"monitor"`
	Kibana        *string             `json:"kibana"`
	Elasticsearch ElasticsearchConfig `json:"elasticsearch"`
	Ngrok         NgrokConfig         `json:"ngrok"`
}

type ElasticsearchConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
}

type NgrokConfig struct {
	Enabled   bool   `json:"enabled"`
	Authtoken string `json:"authtoken"`
	Address   string `json:"address"`
	Protocol  string `json:"protocol"`
}

// DefaultCustomerConfig devuelve la configuracion inicial de un customer.
func DefaultCustomerConfig() CustomerConfig {
	return CustomerConfig{
		Monitor: map[string]any{},
		Elasticsearch: ElasticsearchConfig{
			Enabled: false,
			URL:     "",
		},
		Ngrok: NgrokConfig{
			Enabled: false,
		},
	}
}

// Customer es la organizacion tenant. LastUpdate se refresca en cada save.
type Customer struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	DisplayName  string         `json:"display_name,omitempty"`
	Description  string         `json:"description,omitempty"`
	Config       CustomerConfig `json:"config"`
	CreationDate time.Time      `json:"creation_date"`
	LastUpdate   time.Time      `json:"last_update"`
}
