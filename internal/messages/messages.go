// Package messages holds every fixed user-visible text. Error details never
// reach these strings; failures always map to one of the fixed notices.
package messages

func StartWelcome() string {
	return "👋 ¡Hola! Soy AIDA. Escríbeme lo que quieras y te responderé.\n\n" +
		"Usa /help para ver cómo funciono y /subscribe para mensajes ilimitados."
}

func Help() string {
	return "Usa /start para comenzar. Puedes chatear con la IA. " +
		"Usa /subscribe para acceder a mensajes ilimitados."
}

func SubscribeInfo(subscribed bool) string {
	if subscribed {
		return "⭐ Ya tienes una suscripción activa. ¡Disfruta de mensajes ilimitados!"
	}
	return "⭐ Con la suscripción obtienes mensajes ilimitados cada día.\n" +
		"El pago desde el chat estará disponible muy pronto."
}

func QuotaExceeded() string {
	return "🚫 Límite de mensajes alcanzado. Suscríbete con /subscribe."
}

func ErrorAI() string {
	return "⚠️ Error procesando tu mensaje con la IA."
}

func ErrorStorage() string {
	return "❌ Ocurrió un error. Por favor, inicia con /start."
}

func ErrorUnknownCommand() string {
	return "❓ Comando no encontrado. Usa /help."
}
