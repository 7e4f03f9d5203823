package proxy

import (
	"log"
	"net/url"
	"sync/atomic"
)

// Config é um proxy já parseado, pronto para virar flag do Chromium.
type Config struct {
	Server   string // scheme://host:port, sem credenciais
	Username string
	Password string
}

// Rotator entrega proxies em round-robin. Com a lista vazia, Next sempre
// retorna nil (conexão direta). O cursor é um contador atômico, então a
// rotação é segura mesmo com categorias raspadas em paralelo.
type Rotator struct {
	proxies []Config
	cursor  atomic.Uint64
}

func NewRotator(proxyURLs []string) *Rotator {
	r := &Rotator{}
	for _, raw := range proxyURLs {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" {
			log.Printf("⚠️ Proxy ignorado (URL inválida): %q", raw)
			continue
		}
		cfg := Config{Server: parsed.Scheme + "://" + parsed.Host}
		if parsed.User != nil {
			cfg.Username = parsed.User.Username()
			cfg.Password, _ = parsed.User.Password()
		}
		r.proxies = append(r.proxies, cfg)
	}
	log.Printf("Proxy rotator inicializado com %d proxies", len(r.proxies))
	return r
}

func (r *Rotator) Next() *Config {
	if len(r.proxies) == 0 {
		return nil
	}
	n := r.cursor.Add(1) - 1
	return &r.proxies[n%uint64(len(r.proxies))]
}

func (r *Rotator) Count() int {
	return len(r.proxies)
}
