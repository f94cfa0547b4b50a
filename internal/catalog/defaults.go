package catalog

import "polo_storefront/internal/models"

// Default renvoie le catalogue de la boutique Inversiones Polo
func Default() *Provider {
	p, err := New(defaultProducts)
	if err != nil {
		panic(err)
	}
	return p
}

var defaultProducts = []models.Product{
	{
		ID:          1,
		Name:        "Olla Arrocera 1.8L",
		Price:       "S/ 109.00",
		Image:       "https://home.ripley.com.pe/Attachment/WOP_5/2015234556789/2015234556789_2.jpg",
		Rating:      4.5,
		Category:    "Electrodomésticos",
		Description: "Olla arrocera con función mantener caliente y tapa de vidrio templado.",
		Stock:       12,
	},
	{
		ID:          2,
		Name:        "Licuadora Premium 1200W",
		Price:       "S/ 160.00",
		Image:       "https://home.ripley.com.pe/Attachment/WOP_5/2019312376558/2019312376558_2.jpg",
		Rating:      4.8,
		Category:    "Electrodomésticos",
		Description: "Licuadora de alta potencia con 5 velocidades y jarra de vidrio resistente.",
		Stock:       8,
	},
	{
		ID:          3,
		Name:        "Tostadora 4 Rebanadas 1600W",
		Price:       "S/ 98.00",
		Image:       "https://rimage.ripley.com.pe/home.ripley/Attachment/WOP/1/2019338973328/full_image-2019338973328.jpg",
		Rating:      4.3,
		Category:    "Electrodomésticos",
		Description: "Tostadora de 4 rebanadas con 7 niveles de tostado y bandeja recogemigas extraíble.",
		Stock:       5,
	},
	{
		ID:          4,
		Name:        "Batidora de Mano 250W",
		Price:       "S/ 90.00",
		Image:       "https://osterpe.vtexassets.com/arquivos/ids/156585-1600-auto",
		Rating:      4.6,
		Category:    "Electrodomésticos",
		Description: "Batidora de mano con 6 velocidades y accesorios incluidos.",
		Stock:       0,
	},
	{
		ID:          5,
		Name:        "Plancha de Vapor 1200W",
		Price:       "S/ 59.00",
		Image:       "http://home.ripley.com.pe/Attachment/WOP_5/2019321652148/2019321652148_2.jpg",
		Rating:      4.4,
		Category:    "Electrodomésticos",
		Description: "Plancha de vapor con suela antiadherente, 2 niveles de vapor y función autolimpieza.",
		Stock:       15,
	},
	{
		ID:          6,
		Name:        "Cargador USB-C Rápido 65W",
		Price:       "S/ 45.00",
		Image:       "https://promart.vteximg.com.br/arquivos/ids/8510663-1000-1000/imageUrl_1.jpg",
		Rating:      4.4,
		Category:    "Tecnología",
		Description: "Cargador de carga rápida compatible con laptops y dispositivos móviles.",
		Stock:       20,
	},
	{
		ID:          7,
		Name:        "Audífonos Bluetooth Inalámbricos",
		Price:       "S/ 99.00",
		Image:       "https://oechsle.vteximg.com.br/arquivos/ids/19773389-1000-1000/imageUrl_2.jpg",
		Rating:      4.7,
		Category:    "Tecnología",
		Description: "Audífonos inalámbricos con cancelación de ruido y 30 horas de batería.",
		Stock:       3,
	},
	{
		ID:          8,
		Name:        "Adaptador HDMI 4K",
		Price:       "S/ 35.00",
		Image:       "https://promart.vteximg.com.br/arquivos/ids/2128560-1000-1000/10093308.jpg",
		Rating:      4.2,
		Category:    "Tecnología",
		Description: "Adaptador HDMI compatible con resolución 4K y audio de alta definición.",
		Stock:       25,
	},
	{
		ID:          9,
		Name:        "Cable Lightning Certificado",
		Price:       "S/ 50.00",
		Image:       "https://todatecnologia.pe/wp-content/uploads/2024/06/Cable-UGREEN-USB-C-a-Lightning.png",
		Rating:      4.5,
		Category:    "Tecnología",
		Description: "Cable Lightning certificado MFi de 2 metros con carga rápida.",
		Stock:       10,
	},
	{
		ID:          10,
		Name:        "Freidora de aire 2.5L",
		Price:       "S/ 179.00",
		Image:       "https://www.record.com.pe/wp-content/uploads/2021/05/2_2106500002_2.jpg",
		Rating:      4.5,
		Category:    "Electrodomésticos",
		Description: "Freidora de aire record inoxidable collection 2.5L.",
		Stock:       6,
	},
}
