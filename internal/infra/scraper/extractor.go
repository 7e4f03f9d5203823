package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/zappyhq/maisleads/internal/entity"
	"github.com/zappyhq/maisleads/internal/infra/proxy"
)

// ErrSessionBlocked indica captcha ou desafio anti-bot: a categoria é
// pulada neste ciclo e o run continua. É um desfecho esperado, não pânico.
var ErrSessionBlocked = errors.New("sessão bloqueada pelo Maps (captcha/desafio)")

const (
	feedSelector    = `div[role="feed"]`
	listingSelector = `div[role="feed"] a[href*="/maps/place/"]`

	defaultNavTimeout  = 30 * time.Second
	selectorTimeout    = 8 * time.Second
	selectorRetries    = 3
	defaultMaxScrolls  = 40
	scrollPause        = 1500 * time.Millisecond
	detailSettlePause  = 2500 * time.Millisecond
	backSettlePause    = 2 * time.Second
	consentSettlePause = time.Second
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0 Safari/537.36"

// Extractor dirige uma sessão Chromium contra a busca do Google Maps e
// materializa um candidato por resultado. Cada invocação é uma varredura
// completa: não há retomada no meio.
type Extractor struct {
	Headless   bool
	NavTimeout time.Duration
	MaxScrolls int
}

func NewExtractor() *Extractor {
	return &Extractor{
		Headless:   true,
		NavTimeout: defaultNavTimeout,
		MaxScrolls: defaultMaxScrolls,
	}
}

// ExtractCategory busca a categoria na localidade e devolve os candidatos.
// Falhas de campo degradam para ausente; falhas de sessão abortam a
// varredura e voltam como erro recuperável para o orquestrador.
func (e *Extractor) ExtractCategory(ctx context.Context, category, location string, p *proxy.Config) ([]entity.Candidate, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", e.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("lang", "pt-BR"),
		chromedp.UserAgent(userAgent),
	)
	if p != nil {
		// TODO: proxies autenticados pedem Fetch.continueWithAuth via cdproto;
		// por ora só o endereço vai na flag.
		allocOpts = append(allocOpts, chromedp.ProxyServer(p.Server))
	}
	if path := os.Getenv("CHROME_PATH"); path != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(path))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	searchURL := buildSearchURL(category, location)
	log.Printf("🔍 Raspando: %s", searchURL)

	if err := e.navigate(bctx, searchURL); err != nil {
		return nil, fmt.Errorf("navegação falhou para %q: %w", category, err)
	}
	acceptConsent(bctx)

	if isBlocked(bctx) {
		return nil, ErrSessionBlocked
	}

	if err := waitVisibleRetry(bctx, feedSelector); err != nil {
		// Sem feed não é bloqueio: buscas muito específicas voltam vazias.
		log.Printf("⚠️ Feed de resultados não apareceu para %q @ %s", category, location)
		return nil, nil
	}

	e.scrollResults(bctx)

	total, err := countListings(bctx)
	if err != nil {
		return nil, fmt.Errorf("contagem de resultados falhou para %q: %w", category, err)
	}
	log.Printf("Encontradas %d entradas para %q @ %s", total, category, location)

	var out []entity.Candidate
	for idx := 0; idx < total; idx++ {
		cand, err := e.extractEntry(bctx, category, idx)
		if err != nil {
			if errors.Is(err, ErrSessionBlocked) {
				return nil, err
			}
			// Falha isolada da entrada: loga com contexto e segue a varredura.
			log.Printf("⚠️ Erro na entrada %d de %q: %v", idx, category, err)
			if recErr := e.recoverToResults(bctx, searchURL); recErr != nil {
				log.Printf("⚠️ Não consegui voltar para os resultados de %q: %v", category, recErr)
				break
			}
			continue
		}
		if cand != nil {
			out = append(out, *cand)
		}
	}
	return out, nil
}

func buildSearchURL(category, location string) string {
	query := category + " em " + location
	return "https://www.google.com/maps/search/" + url.PathEscape(strings.ReplaceAll(query, " ", "+"))
}

func (e *Extractor) navigate(ctx context.Context, target string) error {
	navCtx, cancel := context.WithTimeout(ctx, e.NavTimeout)
	defer cancel()
	return chromedp.Run(navCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(3*time.Second),
	)
}

// extractEntry clica na i-ésima entrada, tira um snapshot do painel de
// detalhe e volta para a lista. Retorna (nil, nil) quando a entrada foi
// descartada (nome placeholder / índice esgotado).
func (e *Extractor) extractEntry(ctx context.Context, category string, idx int) (*entity.Candidate, error) {
	clicked, ariaName, err := clickListing(ctx, idx)
	if err != nil {
		return nil, err
	}
	if !clicked {
		return nil, nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, selectorTimeout)
	// Área de botões de ação ou o h1: qualquer um confirma que o painel abriu.
	_ = chromedp.Run(waitCtx, chromedp.WaitVisible(
		`button[data-item-id="phone"], button[data-item-id="address"], div[role="main"] h1`,
		chromedp.ByQuery,
	))
	cancel()

	snap, err := snapshotDetail(ctx)
	if err != nil {
		return nil, err
	}
	snap.AriaName = ariaName

	if isBlocked(ctx) {
		return nil, ErrSessionBlocked
	}

	backCtx, cancelBack := context.WithTimeout(ctx, e.NavTimeout)
	backErr := chromedp.Run(backCtx,
		chromedp.NavigateBack(),
		chromedp.Sleep(backSettlePause),
	)
	cancelBack()
	if backErr != nil {
		return nil, fmt.Errorf("voltar aos resultados: %w", backErr)
	}

	cand, ok := buildCandidate(category, *snap)
	if !ok {
		log.Printf("Entrada %d de %q descartada (painel não carregou o negócio)", idx, category)
		return nil, nil
	}
	return &cand, nil
}

// clickListing re-consulta a lista a cada iteração para evitar referência
// stale e clica na entrada idx. Devolve o aria-label capturado antes do
// clique, a fonte de nome mais confiável quando o painel falha.
func clickListing(ctx context.Context, idx int) (bool, string, error) {
	js := fmt.Sprintf(`(() => {
		const listings = document.querySelectorAll(%q);
		if (%d >= listings.length) return {clicked: false, aria: ""};
		const el = listings[%d];
		const aria = (el.getAttribute("aria-label") || "").trim();
		el.click();
		return {clicked: true, aria: aria};
	})()`, listingSelector, idx, idx)

	var res struct {
		Clicked bool   `json:"clicked"`
		Aria    string `json:"aria"`
	}
	if err := chromedp.Run(ctx,
		chromedp.EvaluateAsDevTools(js, &res),
		chromedp.Sleep(detailSettlePause),
	); err != nil {
		return false, "", err
	}
	return res.Clicked, res.Aria, nil
}

func snapshotDetail(ctx context.Context) (*entrySnapshot, error) {
	selectors, _ := json.Marshal(nameSelectors)
	js := fmt.Sprintf(`(() => {
		const text = sel => {
			const el = document.querySelector(sel);
			return el ? (el.textContent || "").trim() : "";
		};
		const detailNames = [];
		for (const sel of %s) {
			const t = text(sel);
			if (t) detailNames.push(t);
		}
		const ratingEl = document.querySelector('span[aria-label*="estrela"], span[aria-label*="star"]');
		const telHrefs = [];
		for (const a of document.querySelectorAll('a[href^="tel:"]')) {
			telHrefs.push(a.getAttribute("href") || "");
		}
		return {
			ariaName: "",
			detailNames: detailNames,
			ratingAria: ratingEl ? (ratingEl.getAttribute("aria-label") || "") : "",
			address: text('button[data-item-id="address"] div.fontBodyMedium'),
			phoneText: text('button[data-item-id*="phone"] div.fontBodyMedium'),
			telHrefs: telHrefs,
		};
	})()`, selectors)

	var snap entrySnapshot
	if err := chromedp.Run(ctx, chromedp.EvaluateAsDevTools(js, &snap)); err != nil {
		return nil, fmt.Errorf("snapshot do painel: %w", err)
	}
	return &snap, nil
}

// scrollResults rola o feed até o marcador de fim ("Você chegou ao final")
// ou o teto de tentativas.
func (e *Extractor) scrollResults(ctx context.Context) {
	endMarkerJS := `(() => {
		for (const s of document.querySelectorAll("p.fontBodyMedium span")) {
			const t = s.textContent || "";
			if (t.includes("Você chegou ao final") || t.includes("You've reached the end")) return true;
		}
		return false;
	})()`
	scrollJS := fmt.Sprintf(`document.querySelector(%q)?.scrollBy(0, 800)`, feedSelector)

	for i := 0; i < e.MaxScrolls; i++ {
		var done bool
		if err := chromedp.Run(ctx, chromedp.EvaluateAsDevTools(endMarkerJS, &done)); err == nil && done {
			log.Printf("Fim dos resultados após %d rolagens", i)
			return
		}
		if err := chromedp.Run(ctx,
			chromedp.EvaluateAsDevTools(scrollJS, nil),
			chromedp.Sleep(scrollPause),
		); err != nil {
			return
		}
	}
}

func (e *Extractor) recoverToResults(ctx context.Context, searchURL string) error {
	if err := e.navigate(ctx, searchURL); err != nil {
		return err
	}
	if err := waitVisibleRetry(ctx, feedSelector); err != nil {
		return err
	}
	e.scrollResults(ctx)
	return nil
}

func countListings(ctx context.Context) (int, error) {
	var n int
	js := fmt.Sprintf(`document.querySelectorAll(%q).length`, listingSelector)
	err := chromedp.Run(ctx, chromedp.EvaluateAsDevTools(js, &n))
	return n, err
}

// acceptConsent fecha o aviso de cookies quando aparece. Melhor esforço.
func acceptConsent(ctx context.Context) {
	js := `(() => {
		for (const b of document.querySelectorAll("button")) {
			const t = (b.textContent || "").trim();
			if (t.startsWith("Aceitar") || t.startsWith("Accept")) { b.click(); return true; }
		}
		return false;
	})()`
	var clicked bool
	if err := chromedp.Run(ctx, chromedp.EvaluateAsDevTools(js, &clicked)); err == nil && clicked {
		_ = chromedp.Run(ctx, chromedp.Sleep(consentSettlePause))
	}
}

// isBlocked detecta captcha/desafio: iframe de challenge ou redirect para
// a página /sorry/ do Google.
func isBlocked(ctx context.Context) bool {
	js := `(() => {
		if ((location.href || "").includes("/sorry/")) return true;
		return document.querySelectorAll('iframe[src*="captcha"], iframe[src*="challenge"], form#captcha-form').length > 0;
	})()`
	var blocked bool
	if err := chromedp.Run(ctx, chromedp.EvaluateAsDevTools(js, &blocked)); err != nil {
		return false
	}
	return blocked
}

// waitVisibleRetry espera o seletor com retentativas curtas, no lugar de um
// timeout único e longo.
func waitVisibleRetry(ctx context.Context, sel string) error {
	var lastErr error
	for attempt := 1; attempt <= selectorRetries; attempt++ {
		waitCtx, cancel := context.WithTimeout(ctx, selectorTimeout)
		lastErr = chromedp.Run(waitCtx, chromedp.WaitVisible(sel, chromedp.ByQuery))
		cancel()
		if lastErr == nil {
			return nil
		}
		log.Printf("⚠️ Seletor %q não encontrado (tentativa %d/%d)", sel, attempt, selectorRetries)
		if attempt < selectorRetries {
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}
