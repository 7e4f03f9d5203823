package entity

import "strings"

// Modos do prospector: cada modo tem sua própria lista de categorias e o
// target SaaS correspondente.
const (
	ModeZappy  = "zappy"
	ModeLojaky = "lojaky"
)

func ValidMode(mode string) bool {
	return mode == ModeZappy || mode == ModeLojaky
}

func TargetForMode(mode string) string {
	if mode == ModeLojaky {
		return TargetLojaky
	}
	return TargetZappy
}

func CategoriesForMode(mode string) []string {
	if mode == ModeLojaky {
		return LojakyCategories
	}
	return ZappyCategories
}

// BuildLocations monta a lista de buscas: a cidade inteira + cada bairro.
// cities filtra quais cidades entram (vazio = todas); o match é por
// substring case-insensitive, igual ao dashboard.
func BuildLocations(cities []string) []string {
	var locations []string
	for _, city := range CityOrder {
		if len(cities) > 0 && !cityMatches(city, cities) {
			continue
		}
		locations = append(locations, city)
		for _, n := range CityLocations[city] {
			locations = append(locations, n+", "+city)
		}
	}
	if len(locations) == 0 {
		// Filtro não bateu com nenhuma cidade: cai no conjunto completo.
		return BuildLocations(nil)
	}
	return locations
}

func cityMatches(city string, filters []string) bool {
	lower := strings.ToLower(city)
	for _, f := range filters {
		if f = strings.TrimSpace(f); f == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(f)) {
			return true
		}
	}
	return false
}

// CityOrder mantém a ordem estável de varredura das cidades.
var CityOrder = []string{
	"Olinda, PE",
	"Camaragibe, PE",
	"Várzea, Recife, PE",
	"São Lourenço da Mata, PE",
}

var CityLocations = map[string][]string{
	"Olinda, PE": {
		"Casa Caiada", "Bairro Novo", "Rio Doce", "Jardim Atlântico",
		"Peixinhos", "Ouro Preto", "Cidade Tabajara", "Águas Compridas",
		"Amparo", "Carmo", "Varadouro", "Salgadinho", "Bultrins", "Fragoso",
		"Jardim Fragoso", "Sapucaia", "Monte", "Guadalupe", "Caixa D'Água",
		"Alto da Sé", "Amaro Branco", "Bonsucesso", "São Benedito",
		"Passarinho", "Alto da Bondade", "Jardim Brasil", "Sítio Novo",
		"Aguazinha", "Pau Amarelo", "Jatobá",
	},
	"Camaragibe, PE": {
		"Centro", "Aldeia dos Camarás", "Vera Cruz", "Chã de Cruz",
		"Tabatinga", "Bairro dos Estados", "Timbi", "Alberto Maia",
		"Céu Azul", "Santa Mônica", "Vila da Fábrica", "Vale das Pedreiras",
		"Areeiro", "João Paulo II", "Borboleta", "Jardim Primavera",
		"Monte Alegre",
	},
	"Várzea, Recife, PE": {
		"Várzea",
	},
	"São Lourenço da Mata, PE": {
		"Centro", "Nova Tiúma", "Tiúma", "Matriz da Luz", "Pixete",
		"São Lázaro", "Jardim Teresópolis", "Dois Unidos",
	},
}

// ZappyCategories: food service (modo zappy).
var ZappyCategories = []string{
	"Restaurantes", "Pizzarias", "Lanchonetes", "Hamburguerias", "Padarias",
	"Cafés", "Bares", "Sorveterias",
	"Açaí", "Açaiteria", "Churrascarias", "Tapiocarias", "Pastelarias",
	"Espetinhos", "Creperia", "Doceria", "Confeitaria",
	"Marmitaria", "Comida caseira", "Quentinha", "Food truck",
	"Delivery de comida", "Lanches", "Hot dog", "Salgaderia",
	"Cachorro quente", "Burger",
	"Casa de sucos", "Distribuidora de bebidas", "Cervejaria", "Petiscaria",
	"Comida japonesa", "Sushi", "Comida nordestina", "Galeto",
	"Frango assado", "Peixaria", "Marisqueira", "Buffet", "Self service",
	"Comida chinesa", "Comida mexicana", "Comida árabe", "Comida italiana",
	"Comida vegana", "Comida vegetariana", "Comida fit", "Gelateria",
	"Casa de bolos", "Depósito de bebidas",
	"Rotisseria", "Casa de carnes", "Frangos e assados", "Poke",
	"Temakeria", "Yakisoba", "Pastelaria", "Coxinharia",
	"Empadas e salgados", "Churros", "Waffle", "Panquecaria", "Forneria",
	"Esfiharia", "Comida baiana", "Comida mineira", "Comida goiana",
	"Comida peruana", "Comida portuguesa", "Restaurante popular", "Cantina",
	"Bistrô", "Gastropub", "Hamburgueria artesanal", "Pizza delivery",
	"Pizzaria delivery", "Lanchonete delivery", "Restaurante delivery",
	"Sushi delivery", "Açaí delivery", "Marmita fitness", "Comida congelada",
	"Alimentos congelados", "Café da manhã", "Brunch", "Casa de chá",
	"Cafeteria", "Loja de doces", "Bomboniere", "Chocolate artesanal",
	"Brownie", "Bolo no pote", "Bolo de rolo", "Tortas e bolos",
	"Salgados para festa", "Buffet infantil", "Buffet de festas", "Catering",
	"Loja de açaí", "Frozen yogurt", "Picolé artesanal", "Paleta mexicana",
	"Espetaria", "Churrasco", "Costela no bafo", "Picanha", "Frutos do mar",
	"Restaurante de peixe", "Tacos", "Burrito", "Kebab", "Shawarma",
	"Falafel", "Fish and chips", "Batata recheada", "Sanduícheria", "Wrap",
	"Saladas", "Comida orgânica", "Alimentos naturais", "Sucos naturais",
	"Smoothie", "Milkshake", "Bubble tea", "Água de coco", "Bar de drinks",
	"Cocktailbar", "Wine bar", "Pub", "Choperia", "Adega",
	"Distribuidora de gás",
}

// LojakyCategories: varejo e serviços (modo lojaky).
var LojakyCategories = []string{
	"Lojas de roupas", "Moda feminina", "Moda masculina", "Moda infantil",
	"Moda praia", "Moda plus size", "Moda evangélica", "Moda fitness",
	"Lojas de calçados", "Boutique", "Brechó", "Loja de lingerie",
	"Loja de bolsas", "Loja de bijuterias", "Loja de acessórios",
	"Loja de tecidos", "Loja de uniformes", "Camisetas personalizadas",
	"Ateliê de costura", "Sapataria", "Loja de chapéus",
	"Joalheria", "Relojoaria", "Loja de semi joias", "Loja de prata",
	"Ótica e relojoaria",
	"Salões de beleza", "Salão de cabelo", "Barbearias", "Barbearia premium",
	"Manicure e pedicure", "Clínica de estética", "Estúdio de tatuagem",
	"Design de sobrancelhas", "Lojas de cosméticos", "Perfumaria",
	"Loja de perfumes importados", "Loja de maquiagem", "Extensão de cílios",
	"Micropigmentação", "Depilação a laser", "Spa",
	"Loja de produtos de beleza", "Loja de cabelos", "Perucas e apliques",
	"Nail designer", "Loja de esmaltes", "Produtos naturais",
	"Loja de produtos naturais", "Loja de suplementos", "Empório natural",
	"Pet shops", "Banho e tosa", "Clínica veterinária",
	"Pet shop e veterinária", "Acessórios para pets",
	"Ração e alimentos para pets",
	"Farmácias", "Drogarias", "Óticas", "Clínica odontológica",
	"Consultório médico", "Clínica de fisioterapia",
	"Laboratório de análises", "Clínica dermatológica", "Nutricionista",
	"Psicólogo", "Fonoaudiólogo", "Loja de produtos ortopédicos",
	"Loja de equipamentos médicos", "Farmácia de manipulação",
	"Academias", "Studio de pilates", "Crossfit", "Escola de dança",
	"Escola de luta", "Yoga", "Personal trainer",
	"Loja de artigos esportivos", "Loja de suplementos esportivos",
	"Supermercado", "Mercadinho", "Minimercado", "Mercearia",
	"Loja de conveniência", "Hortifruti", "Atacadão", "Atacado e varejo",
	"Empório", "Casa de frios", "Loja de temperos",
	"Loja de móveis", "Loja de material de construção", "Loja de tintas",
	"Loja de decoração", "Loja de colchões", "Loja de eletrodomésticos",
	"Vidraçaria", "Serralheria", "Marcenaria", "Loja de cortinas",
	"Loja de pisos e revestimentos", "Loja de iluminação",
	"Loja de ferramentas", "Casa e jardim", "Loja de utilidades domésticas",
	"Loja de cama mesa e banho", "Tapetes e carpetes",
	"Persianas e cortinas", "Loja de ar condicionado",
	"Loja de celulares", "Celulares e acessórios",
	"Assistência técnica celular", "Conserto de celular", "Loja de capinhas",
	"Loja de eletrônicos", "Loja de informática",
	"Assistência técnica notebook", "Loja de games", "Loja de drones",
	"Loja de som", "Loja de TVs",
	"CFTV e câmeras", "Alarmes e segurança", "Cercas elétricas",
	"Portões automáticos",
	"Materiais elétricos", "Loja de materiais hidráulicos", "Energia solar",
	"Eletricista", "Encanador",
	"Autopeças", "Oficina mecânica", "Lava jato", "Borracharia",
	"Auto elétrica", "Funilaria e pintura", "Motopeças", "Bicicletaria",
	"Som automotivo", "Insulfilm", "Pneus", "Estacionamento",
	"Acessórios automotivos", "Loja de baterias",
	"Lojas de varejo", "Papelarias", "Floricultura", "Loja de brinquedos",
	"Loja de presentes", "Armarinho", "Loja de embalagens", "Livraria",
	"Loja de artigos religiosos", "Loja de artigos para festas",
	"Casa de festas", "Aluguel de trajes", "Loja de malas e bolsas",
	"Tabacaria", "Sex shop", "Loja de pesca", "Loja de camping",
	"Loja de artigos militares", "Loja de instrumentos musicais",
	"Loja de artesanato", "Loja de quadros e molduras", "Antiquário",
	"Lavanderia", "Chaveiro", "Gráfica", "Cartório", "Imobiliária",
	"Contabilidade", "Escola de idiomas", "Auto escola", "Coworking",
	"Fotógrafo", "Estúdio fotográfico", "Dedetizadora",
	"Limpeza e conservação", "Caçamba e entulho", "Mudanças e fretes",
	"Corretor de seguros", "Despachante", "Escritório de advocacia",
	"Consultoria empresarial", "Marketing digital",
	"Agência de publicidade", "Web design",
	"Escola de cursos profissionalizantes", "Escola de informática",
	"Escola particular", "Creche", "Clínica de reforço escolar",
}
