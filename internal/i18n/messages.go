package i18n

// Message keys.
const (
	KeyGenericError      = "genericError"
	KeyNotAuthorized     = "notAuthorized"
	KeyInvalidEmail      = "invalidEmail"
	KeyCannotChangeSelf  = "cannotChangeSelf"
	KeyModuleUnavailable = "moduleUnavailable"
	KeySessionLoadFailed = "sessionLoadFailed"
	KeyTooManyRequests   = "tooManyRequests"

	KeyInvalidImage  = "invalidImage"
	KeyPhotoTooLarge = "photoTooLarge"
	KeyTextTooLong   = "textTooLong"

	KeyDamageDescriptionRequired = "damageDescriptionRequired"
	KeyDamagePhotoRequired       = "damagePhotoRequired"
	KeyDamageSaved               = "damageSaved"

	KeyMaintenanceDescriptionRequired = "maintenanceDescriptionRequired"
	KeyMaintenanceSaved               = "maintenanceSaved"
	KeyMaintenanceNoResponse          = "maintenanceNoResponse"
	KeyGeoUnavailable                 = "geoUnavailable"
	KeyGeoFailed                      = "geoFailed"

	KeyOrderDetailsRequired = "orderDetailsRequired"
	KeyOrderTypeInvalid     = "orderTypeInvalid"
	KeyOrderSaved           = "orderSaved"

	KeyFuelTokenIssued   = "fuelTokenIssued"
	KeyFuelTokenRequired = "fuelTokenRequired"
	KeyFuelValueInvalid  = "fuelValueInvalid"
	KeyFuelKmInvalid     = "fuelKmInvalid"
	KeyFuelSaved         = "fuelSaved"

	KeyLanguageInvalid = "languageInvalid"

	KeyTileDamages     = "damages"
	KeyTileFuel        = "fuel"
	KeyTileMaintenance = "maintenance"
	KeyTileOrders      = "orders"
	KeyTileSupport     = "support"
	KeyTileLanguage    = "language"
)

var catalog = map[Lang]map[string]string{
	PT: {
		KeyGenericError:      "Ocorreu um erro. Tente novamente.",
		KeyNotAuthorized:     "Não tem permissão para realizar esta ação.",
		KeyInvalidEmail:      "Email inválido.",
		KeyCannotChangeSelf:  "Não pode alterar o seu próprio acesso.",
		KeyModuleUnavailable: "Módulo em configuração. Tente novamente mais tarde.",
		KeySessionLoadFailed: "Não foi possível carregar a sessão.",
		KeyTooManyRequests:   "Demasiados pedidos. Aguarde um momento.",

		KeyInvalidImage:  "Envie uma foto válida (imagem).",
		KeyPhotoTooLarge: "A foto excede o tamanho máximo permitido.",
		KeyTextTooLong:   "O texto é demasiado longo.",

		KeyDamageDescriptionRequired: "Descreva o dano no relatório.",
		KeyDamagePhotoRequired:       "Adicione uma foto do dano para concluir o envio.",
		KeyDamageSaved:               "Dano registrado com sucesso.",

		KeyMaintenanceDescriptionRequired: "Descreva o problema da máquina.",
		KeyMaintenanceSaved:               "Solicitação de manutenção enviada com sucesso.",
		KeyMaintenanceNoResponse:          "Ainda sem resposta. Aguarde retorno da equipe de manutenção.",
		KeyGeoUnavailable:                 "Geolocalização não disponível neste dispositivo.",
		KeyGeoFailed:                      "Não foi possível obter sua localização.",

		KeyOrderDetailsRequired: "Descreva seu pedido para que a equipe avalie.",
		KeyOrderTypeInvalid:     "Tipo de pedido inválido.",
		KeyOrderSaved:           "Pedido enviado com sucesso. Acompanhe a situação abaixo.",

		KeyFuelTokenIssued:   "Token gerado. Complete os dados para registrar o abastecimento.",
		KeyFuelTokenRequired: "Gere o token primeiro.",
		KeyFuelValueInvalid:  "Informe um valor válido para o abastecimento.",
		KeyFuelKmInvalid:     "Informe um valor válido para horas ou KM do painel.",
		KeyFuelSaved:         "Abastecimento registrado com sucesso!",

		KeyLanguageInvalid: "Idioma não suportado.",

		KeyTileDamages:     "Danos",
		KeyTileFuel:        "Abastecimento",
		KeyTileMaintenance: "Manutenção",
		KeyTileOrders:      "Pedidos",
		KeyTileSupport:     "Suporte",
		KeyTileLanguage:    "Idioma",
	},
	EN: {
		KeyGenericError:      "Something went wrong. Please try again.",
		KeyNotAuthorized:     "You are not allowed to perform this action.",
		KeyInvalidEmail:      "Invalid email.",
		KeyCannotChangeSelf:  "You cannot change your own access.",
		KeyModuleUnavailable: "This module is being set up. Please try again later.",
		KeySessionLoadFailed: "Could not load your session.",
		KeyTooManyRequests:   "Too many requests. Please wait a moment.",

		KeyInvalidImage:  "Please send a valid photo (image).",
		KeyPhotoTooLarge: "The photo is larger than the allowed size.",
		KeyTextTooLong:   "The text is too long.",

		KeyDamageDescriptionRequired: "Describe the damage in the report.",
		KeyDamagePhotoRequired:       "Add a photo of the damage to submit.",
		KeyDamageSaved:               "Damage reported successfully.",

		KeyMaintenanceDescriptionRequired: "Describe the machine problem.",
		KeyMaintenanceSaved:               "Maintenance request sent successfully.",
		KeyMaintenanceNoResponse:          "No response yet. Wait for the maintenance team.",
		KeyGeoUnavailable:                 "Geolocation is not available on this device.",
		KeyGeoFailed:                      "Could not get your location.",

		KeyOrderDetailsRequired: "Describe your request so the team can review it.",
		KeyOrderTypeInvalid:     "Invalid request type.",
		KeyOrderSaved:           "Request sent. Follow its status below.",

		KeyFuelTokenIssued:   "Token issued. Fill in the details to log the refuelling.",
		KeyFuelTokenRequired: "Generate the token first.",
		KeyFuelValueInvalid:  "Enter a valid amount for the refuelling.",
		KeyFuelKmInvalid:     "Enter a valid value for the dashboard hours or km.",
		KeyFuelSaved:         "Refuelling logged successfully!",

		KeyLanguageInvalid: "Unsupported language.",

		KeyTileDamages:     "Damages",
		KeyTileFuel:        "Fuel",
		KeyTileMaintenance: "Maintenance",
		KeyTileOrders:      "Requests",
		KeyTileSupport:     "Support",
		KeyTileLanguage:    "Language",
	},
}
