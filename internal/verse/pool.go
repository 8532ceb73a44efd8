package verse

// DefaultPool is the built-in prayer verse collection.
var DefaultPool = Pool{
	Morning: {
		{Text: "Very early in the morning, while it was still dark, Jesus got up, left the house and went off to a solitary place, where he prayed.", Reference: "Mark 1:35", Category: Morning},
		{Text: "In the morning, Lord, you hear my voice; in the morning I lay my requests before you and wait expectantly.", Reference: "Psalm 5:3", Category: Morning},
		{Text: "Let the morning bring me word of your unfailing love, for I have put my trust in you. Show me the way I should go, for to you I entrust my life.", Reference: "Psalm 143:8", Category: Morning},
		{Text: "My heart is steadfast, O God; I will sing and make music with all my soul. Awake, harp and lyre! I will awaken the dawn.", Reference: "Psalm 108:1-2", Category: Morning},
		{Text: "This is the day the Lord has made; we will rejoice and be glad in it.", Reference: "Psalm 118:24", Category: Morning},
		{Text: "Because of the Lord's great love we are not consumed, for his compassions never fail. They are new every morning; great is your faithfulness.", Reference: "Lamentations 3:22-23", Category: Morning},
		{Text: "Satisfy us in the morning with your unfailing love, that we may sing for joy and be glad all our days.", Reference: "Psalm 90:14", Category: Morning},
		{Text: "But I trust in your unfailing love; my heart rejoices in your salvation. I will sing the Lord's praise, for he has been good to me.", Reference: "Psalm 13:5-6", Category: Morning},
	},
	Midday: {
		{Text: "At noon I will pray and cry aloud, and He shall hear my voice.", Reference: "Psalm 55:17", Category: Midday},
		{Text: "But I call to God, and the Lord saves me. Evening, morning and noon I cry out in distress, and he hears my voice.", Reference: "Psalm 55:16-17", Category: Midday},
		{Text: "Cast all your anxiety on him because he cares for you.", Reference: "1 Peter 5:7", Category: Midday},
		{Text: "Come to me, all you who are weary and burdened, and I will give you rest.", Reference: "Matthew 11:28", Category: Midday},
		{Text: "Trust in the Lord with all your heart and lean not on your own understanding; in all your ways submit to him, and he will make your paths straight.", Reference: "Proverbs 3:5-6", Category: Midday},
		{Text: "The Lord is my shepherd, I lack nothing. He makes me lie down in green pastures, he leads me beside quiet waters.", Reference: "Psalm 23:1-2", Category: Midday},
	},
	Evening: {
		{Text: "From the rising of the sun to the place where it sets, the name of the Lord is to be praised.", Reference: "Psalm 113:3", Category: Evening},
		{Text: "Let my prayer be set before You as incense, the lifting up of my hands as the evening sacrifice.", Reference: "Psalm 141:2", Category: Evening},
		{Text: "The Lord your God is with you, the Mighty Warrior who saves. He will take great delight in you; in his love he will no longer rebuke you, but will rejoice over you with singing.", Reference: "Zephaniah 3:17", Category: Evening},
		{Text: "Be still, and know that I am God; I will be exalted among the nations, I will be exalted in the earth.", Reference: "Psalm 46:10", Category: Evening},
		{Text: "When I lie down, I go to sleep in peace; you alone, O Lord, let me sleep in safety.", Reference: "Psalm 4:8", Category: Evening},
		{Text: "The Lord bless you and keep you; the Lord make his face shine on you and be gracious to you; the Lord turn his face toward you and give you peace.", Reference: "Numbers 6:24-26", Category: Evening},
	},
	Night: {
		{Text: "I will praise the Lord, who counsels me; even at night my heart instructs me.", Reference: "Psalm 16:7", Category: Night},
		{Text: "On my bed I remember you; I think of you through the watches of the night.", Reference: "Psalm 63:6", Category: Night},
		{Text: "By day the Lord directs his love, at night his song is with me—a prayer to the God of my life.", Reference: "Psalm 42:8", Category: Night},
		{Text: "The Lord appeared to us in the past, saying: 'I have loved you with an everlasting love; I have drawn you with unfailing kindness.'", Reference: "Jeremiah 31:3", Category: Night},
		{Text: "He gives strength to the weary and increases the power of the weak.", Reference: "Isaiah 40:29", Category: Night},
	},
	General: {
		{Text: "And pray in the Spirit on all occasions with all kinds of prayers and requests. With this in mind, be alert and always keep on praying for all the Lord's people.", Reference: "Ephesians 6:18", Category: General},
		{Text: "Do not be anxious about anything, but in every situation, by prayer and petition, with thanksgiving, present your requests to God.", Reference: "Philippians 4:6", Category: General},
		{Text: "The prayer of a righteous person is powerful and effective.", Reference: "James 5:16", Category: General},
		{Text: "Call to me and I will answer you and tell you great and unsearchable things you do not know.", Reference: "Jeremiah 33:3", Category: General},
		{Text: "Ask and it will be given to you; seek and you will find; knock and the door will be opened to you.", Reference: "Matthew 7:7", Category: General},
		{Text: "The Lord is near to all who call on him, to all who call on him in truth.", Reference: "Psalm 145:18", Category: General},
		{Text: "Rejoice always, pray continually, give thanks in all circumstances; for this is God's will for you in Christ Jesus.", Reference: "1 Thessalonians 5:16-18", Category: General},
		{Text: "If any of you lacks wisdom, you should ask God, who gives generously to all without finding fault, and it will be given to you.", Reference: "James 1:5", Category: General},
	},
}
