package domain

// Region is a marker on the public site's interactive map.
type Region struct {
	Slug  string  `json:"region"`
	Title string  `json:"title"`
	Desc  string  `json:"desc"`
	Badge string  `json:"badge"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lng"`
}

// Regions is the fixed marker set for the Georgia map.
var Regions = []Region{
	{Slug: "tbilisi", Title: "Тбилиси", Desc: "Столица Грузии, старый город с серными банями", Badge: "Столица", Lat: 41.7151, Lon: 44.8271},
	{Slug: "kakheti", Title: "Кахетия", Desc: "Сигнахи, Телави, винные погреба и виноградники", Badge: "Вино", Lat: 41.8395, Lon: 45.3520},
	{Slug: "mtskheta", Title: "Мцхета-Мтианети", Desc: "Казбеги, монастырь Джвари, Военно-Грузинская дорога", Badge: "Горы", Lat: 42.6560, Lon: 44.6387},
	{Slug: "adjara", Title: "Аджария", Desc: "Батуми, Черноморское побережье, современная архитектура", Badge: "Побережье", Lat: 41.6410, Lon: 41.6340},
	{Slug: "imereti", Title: "Имеретия", Desc: "Кутаиси, храм Баграти, пещера Прометея", Badge: "Культура", Lat: 42.2679, Lon: 42.6990},
	{Slug: "samegrelo", Title: "Самегрело", Desc: "Мартвильский каньон, каньон Окаце, озеро Палиастоми", Badge: "Природа", Lat: 42.5090, Lon: 41.8710},
	{Slug: "samtskhe", Title: "Самцхе-Джавахети", Desc: "Пещерный монастырь Вардзия, Боржоми, крепость Рабат", Badge: "История", Lat: 41.3780, Lon: 43.4050},
	{Slug: "shida-kartli", Title: "Шида Картли", Desc: "Гори, пещерный город Уплисцихе", Badge: "История", Lat: 42.3450, Lon: 43.9960},
	{Slug: "kvemo-kartli", Title: "Квемо Картли", Desc: "Дманиси, Болнисский Сион", Badge: "Наследие", Lat: 41.4430, Lon: 44.4870},
	{Slug: "racha", Title: "Рача-Лечхуми", Desc: "Горное вино Хванчкара, озеро Шаори", Badge: "Горы", Lat: 42.6820, Lon: 43.4270},
	{Slug: "guria", Title: "Гурия", Desc: "Чайные плантации, Уреки с магнитными песками", Badge: "Природа", Lat: 41.9730, Lon: 42.1110},
	{Slug: "abkhazia", Title: "Абхазия", Desc: "Историческая область Грузии, Новый Афон, озеро Рица", Badge: "Историческая область", Lat: 43.0096, Lon: 41.0230},
}
