package queue

import "github.com/zappyhq/maisleads/internal/entity"

// PitchFor devolve a mensagem de prospecção conforme o produto de destino.
func PitchFor(targetSaaS string) string {
	if targetSaaS == entity.TargetZappy {
		return zappyPitch
	}
	return lojakyPitch
}

const zappyPitch = "Olá! 👋\n\n" +
	"Somos do Zappy e encontrei seu negócio no Google. " +
	"Parabéns pelo trabalho! 🎉\n\n" +
	"A Zappy é uma plataforma de gestão completa para " +
	"Delivery e muito mais, que ajuda a:\n\n" +
	"📱 Receber pedidos por WhatsApp automaticamente\n" +
	"📊 Controlar estoque e Pedidos em tempo real\n" +
	"💰 Sem taxas diferente de outros apps de delivery " +
	"Você mantém 100% do lucro!\n\n" +
	"Segue o link para dar uma olhada! 😊\n\n" +
	"https://zappy.noviapp.com.br/\n\n" +
	"Se tiver interesse faça seu cadastro sem compromisso aqui: " +
	"https://zappy.noviapp.com.br/register\n\n" +
	"Boas Vendas !!!!"

const lojakyPitch = "Olá! 👋\n\n" +
	"Somos do Lojaky e encontrei seu negócio no Google. " +
	"Parabéns pelo trabalho! 🎉\n\n" +
	"O Lojaky é uma plataforma de vendas online completa para " +
	"lojas e muito mais, que ajuda a:\n\n" +
	"🛒 Vender pelo WhatsApp com Loja Online\n" +
	"📦 Controlar estoque e vendas em tempo real\n" +
	"💰 Sem taxas Você mantém 100% do lucro!\n\n" +
	"Segue o link para dar uma olhada! 😊\n\n" +
	"https://lojaky.noviapp.com.br/\n\n" +
	"Se tiver interesse faça seu cadastro sem compromisso aqui: " +
	"https://lojaky.noviapp.com.br/register\n\n" +
	"Boas Vendas !!!!"
